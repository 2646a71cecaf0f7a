package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	ReportSubject = "Daily Stage Report"
	reportStages  = 14
)

type DailyReportUseCase struct {
	Stages StageSource
	Mailer ReportMailer
	Logger *zap.Logger
}

func NewDailyReportUseCase(stages StageSource, mailer ReportMailer, logger *zap.Logger) *DailyReportUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyReportUseCase{Stages: stages, Mailer: mailer, Logger: logger}
}

// Send counts leads per funnel stage and emails the summary to `to`.
func (uc *DailyReportUseCase) Send(ctx context.Context, to string) error {
	rows, err := uc.Stages.ListStages(ctx)
	if err != nil {
		return &TechnicalError{Code: CodeUpstreamCall, Message: "Failed to load stages", Err: err}
	}

	counts := make([]int, reportStages+1)
	for _, row := range rows {
		if n, ok := stageNumber(row.Stage); ok {
			counts[n]++
		}
	}

	if err := uc.Mailer.SendReport(ctx, to, ReportSubject, RenderReport(counts)); err != nil {
		return &TechnicalError{Code: CodeMessaging, Message: "Failed to send daily report", Err: err}
	}

	uc.Logger.Info("📊 daily stage report sent", zap.String("to", to), zap.Int("rows", len(rows)))
	return nil
}

// RenderReport formats counts[1..14] as the plain-text report body.
func RenderReport(counts []int) string {
	var b strings.Builder
	b.WriteString("Daily Stage Report:\n\n")
	for i := 1; i <= reportStages; i++ {
		n := 0
		if i < len(counts) {
			n = counts[i]
		}
		fmt.Fprintf(&b, "Stage %d: %d users\n", i, n)
	}
	return b.String()
}

// stageNumber accepts integer stages 1..14 given as a number or its exact decimal string.
func stageNumber(v any) (int, bool) {
	var n int
	switch s := v.(type) {
	case float64:
		if s != math.Trunc(s) {
			return 0, false
		}
		n = int(s)
	case json.Number:
		i, err := s.Int64()
		if err != nil {
			return 0, false
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(s)
		if err != nil || strconv.Itoa(i) != s {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < 1 || n > reportStages {
		return 0, false
	}
	return n, true
}
