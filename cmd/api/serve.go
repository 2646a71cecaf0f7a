package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/infra/http/handlers"
	"github.com/automatedtaxcredits/intake-api/internal/infra/integration/signalwire"
	"github.com/automatedtaxcredits/intake-api/internal/infra/integration/zoho"
	"github.com/automatedtaxcredits/intake-api/internal/infra/queue"
	"github.com/automatedtaxcredits/intake-api/internal/infra/security"
	"github.com/automatedtaxcredits/intake-api/internal/infra/worker"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())
	cfg, log := a.cfg, a.logger

	// 1. Stores
	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	if st.pool != nil {
		defer st.pool.Close()
	}

	// 2. Gateways and adapters
	tokens := zoho.NewTokenSource(cfg.Zoho.AccountsURL, zoho.Credentials{
		RefreshToken: cfg.Zoho.RefreshToken,
		ClientID:     cfg.Zoho.ClientID,
		ClientSecret: cfg.Zoho.ClientSecret,
		GrantType:    cfg.Zoho.GrantType,
	}, &http.Client{Transport: a.transport, Timeout: cfg.HTTPClientTimeout}, log)
	crm := zoho.NewClient(cfg.Zoho.APIURL, tokens, a.transport, cfg.HTTPClientTimeout)

	sms := signalwire.NewClient(
		cfg.SignalWire.SpaceURL, cfg.SignalWire.ProjectID, cfg.SignalWire.APIToken, cfg.SignalWire.FromNumber,
		a.transport, cfg.HTTPClientTimeout,
	)
	signer := security.NewEmailTokenSigner(cfg.JWTSecret, cfg.EmailTokenTTL)

	var (
		events usecase.LeadEventPublisher = queue.NoopProducer{}
		broker handlers.ConnState
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		events = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ
	}

	// 3. Use cases
	leads := usecase.NewLeadUseCase(crm, events, log)
	phone := usecase.NewPhoneVerificationUseCase(st.phone, sms, log)
	email := usecase.NewEmailVerificationUseCase(st.email, signer, a.mailer, cfg.ClientBaseURL, log)
	progress := usecase.NewProgressUseCase(st.progress, log)
	forms := usecase.NewFormSubmissionUseCase(a.xano)

	// 4. Daily report
	if cfg.ReportRecipient != "" {
		w := worker.NewDailyReportWorker(a.dailyReport(), cfg.ReportRecipient, cfg.ReportHour, log)
		go w.Start(ctx)
	}

	// 5. Router
	health := &handlers.HealthHandler{
		XanoURL:       cfg.Xano.VerificationURL,
		RabbitMQ:      broker,
		CRMConfigured: cfg.Zoho.RefreshToken != "",
		Version:       version,
		StartTime:     time.Now(),
	}
	if st.pool != nil {
		health.Store = st.pool
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
		Leads:          handlers.NewLeadHandler(leads, log),
		Verification:   handlers.NewVerificationHandler(phone, email, log),
		Progress:       handlers.NewProgressHandler(progress, forms, log),
		Health:         health,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🔥 server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
