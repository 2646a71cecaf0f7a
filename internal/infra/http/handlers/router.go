package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/infra/http/middleware"
	"github.com/automatedtaxcredits/intake-api/internal/infra/telemetry"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	Logger         *zap.Logger

	Leads        *LeadHandler
	Verification *VerificationHandler
	Progress     *ProgressHandler
	Health       *HealthHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(telemetry.Middleware(cfg.ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", Ping)
		if cfg.Health != nil {
			r.Get("/health", cfg.Health.Handle)
		}

		r.Post("/insert_deal", cfg.Leads.InsertDeal)
		r.Post("/insert_tax_intake", cfg.Leads.InsertTaxIntake)
		r.Post("/update_stage/{id}", cfg.Leads.UpdateStage)
		r.Post("/update_tax_stage/{id}", cfg.Leads.UpdateTaxStage)
		r.Post("/update_amount/{id}", cfg.Leads.UpdateAmount)
		r.Post("/update_ssn/{id}", cfg.Leads.UpdateSSN)
		r.Post("/update_record/{id}", cfg.Leads.UpdateRecord)
		r.Post("/update_existing/{id}", cfg.Leads.UpdateExisting)
		r.Get("/get_record/{id}", cfg.Leads.GetRecord)

		r.Post("/request_auth_code", cfg.Verification.RequestAuthCode)
		r.Post("/verify_auth_code", cfg.Verification.VerifyAuthCode)
		r.Post("/email_auth", cfg.Verification.EmailAuth)
		r.Get("/verify_email/{token}", cfg.Verification.VerifyEmail)
		r.Post("/email_verified_status", cfg.Verification.EmailVerifiedStatus)

		r.Post("/submitted_webhook", cfg.Progress.SubmittedWebhook)
		r.Post("/save_to_xano", cfg.Progress.SaveToXano)
		r.Post("/save_progress", cfg.Progress.SaveProgress)
		r.Get("/load_progress", cfg.Progress.LoadProgress)
	})

	return r
}
