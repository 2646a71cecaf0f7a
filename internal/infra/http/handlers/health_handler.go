package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type ConnState interface {
	IsClosed() bool
}

type HealthHandler struct {
	Store         Pinger // postgres pool; nil for the xano backend
	XanoURL       string
	RabbitMQ      ConnState
	CRMConfigured bool
	Version       string
	StartTime     time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

const (
	depHealthy       = "healthy"
	depConfigured    = "configured"
	depNotConfigured = "not configured"
)

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"store":    h.storeState(r.Context()),
		"rabbitmq": h.brokerState(),
		"crm":      configured(h.CRMConfigured),
	}

	status, code := "healthy", http.StatusOK
	for _, state := range deps {
		if state != depHealthy && state != depConfigured && state != depNotConfigured {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}

func (h *HealthHandler) storeState(ctx context.Context) string {
	if h.Store == nil {
		return configured(h.XanoURL != "")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		return fmt.Sprintf("unhealthy: %v", err)
	}
	return depHealthy
}

func (h *HealthHandler) brokerState() string {
	switch {
	case h.RabbitMQ == nil:
		return depNotConfigured
	case h.RabbitMQ.IsClosed():
		return "unhealthy: connection closed"
	default:
		return depHealthy
	}
}

func configured(ok bool) string {
	if ok {
		return depConfigured
	}
	return depNotConfigured
}

func Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
