package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/config"
	"github.com/automatedtaxcredits/intake-api/internal/infra/database"
	"github.com/automatedtaxcredits/intake-api/internal/infra/integration/xano"
	"github.com/automatedtaxcredits/intake-api/internal/infra/logger"
	"github.com/automatedtaxcredits/intake-api/internal/infra/mail"
	"github.com/automatedtaxcredits/intake-api/internal/infra/telemetry"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

// app holds what both the server and the one-shot commands need.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	transport http.RoundTripper
	xano      *xano.Client
	mailer    *mail.EmailSender
	shutdown  telemetry.ShutdownFunc
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.LogLvl,
		Dir:        cfg.LogDir,
		Production: cfg.IsProduction(),
	})
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, serviceName, version, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	transport := telemetry.Transport(nil)

	return &app{
		cfg:       cfg,
		logger:    log,
		transport: transport,
		xano: xano.NewClient(xano.Endpoints{
			VerificationURL: cfg.Xano.VerificationURL,
			ProgressURL:     cfg.Xano.ProgressURL,
			FormsURL:        cfg.Xano.FormsURL,
			StagesURL:       cfg.Xano.StagesURL,
		}, transport, cfg.HTTPClientTimeout),
		mailer: mail.NewEmailSender(
			cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.EmailTokenTTL,
		),
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) dailyReport() *usecase.DailyReportUseCase {
	return usecase.NewDailyReportUseCase(a.xano, a.mailer, a.logger)
}

// stores is the verification and progress backend picked by STORE_BACKEND.
type stores struct {
	phone    usecase.PhoneVerificationStore
	email    usecase.EmailVerificationStore
	progress usecase.ProgressStore
	pool     *pgxpool.Pool
}

func (a *app) openStores(ctx context.Context) (*stores, error) {
	if a.cfg.StoreBackend != config.StorePostgres {
		return &stores{phone: a.xano, email: a.xano, progress: a.xano}, nil
	}

	pool, err := database.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	verifications := database.NewVerificationRepository(pool)
	return &stores{
		phone:    verifications,
		email:    verifications,
		progress: database.NewProgressRepository(pool),
		pool:     pool,
	}, nil
}
