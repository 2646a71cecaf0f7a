package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReportSender is satisfied by usecase.DailyReportUseCase.
type ReportSender interface {
	Send(ctx context.Context, to string) error
}

// DailyReportWorker sends the stage report once a day at the configured hour.
type DailyReportWorker struct {
	sender       ReportSender
	recipient    string
	hour         int
	tickInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger

	lastRun string // date of the last run, YYYY-MM-DD
}

func NewDailyReportWorker(sender ReportSender, recipient string, hour int, logger *zap.Logger) *DailyReportWorker {
	return &DailyReportWorker{
		sender:       sender,
		recipient:    recipient,
		hour:         hour,
		tickInterval: time.Minute,
		now:          time.Now,
		logger:       logger,
	}
}

func (w *DailyReportWorker) Start(ctx context.Context) {
	w.logger.Info("daily report worker started",
		zap.Int("hour", w.hour), zap.String("recipient", w.recipient))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("daily report worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick reports whether the report was sent on this call.
func (w *DailyReportWorker) tick(ctx context.Context) bool {
	now := w.now()
	today := now.Format(time.DateOnly)
	if now.Hour() != w.hour || w.lastRun == today {
		return false
	}
	w.lastRun = today

	if err := w.sender.Send(ctx, w.recipient); err != nil {
		w.logger.Error("daily report failed", zap.Error(err))
		return true
	}
	w.logger.Info("daily report sent", zap.String("recipient", w.recipient))
	return true
}
