package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

type ProgressService interface {
	OnWebhookEvent(ctx context.Context, ev usecase.WebhookEvent) error
	Save(ctx context.Context, in usecase.SaveProgressRequest) (*usecase.MessageOutput, error)
	Load(ctx context.Context, email string) (*entity.Progress, error)
}

type FormSubmitter interface {
	Execute(ctx context.Context, in usecase.SaveToXanoRequest) (json.RawMessage, error)
}

type ProgressHandler struct {
	Progress ProgressService
	Forms    FormSubmitter
	Logger   *zap.Logger
}

func NewProgressHandler(progress ProgressService, forms FormSubmitter, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{Progress: progress, Forms: forms, Logger: logger}
}

// SubmittedWebhook always acknowledges so the sender does not retry.
func (h *ProgressHandler) SubmittedWebhook(w http.ResponseWriter, r *http.Request) {
	var ev usecase.WebhookEvent
	if err := decode(r, &ev); err != nil {
		h.Logger.Warn("⚠️ unreadable webhook body", zap.Error(err))
	} else if err := h.Progress.OnWebhookEvent(r.Context(), ev); err != nil {
		h.Logger.Error("❌ webhook processing failed",
			zap.String("event_id", ev.ID.Value),
			zap.Error(err),
		)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var in usecase.SaveProgressRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	out, err := h.Progress.Save(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProgressHandler) LoadProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.Progress.Load(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProgressHandler) SaveToXano(w http.ResponseWriter, r *http.Request) {
	var in usecase.SaveToXanoRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	body, err := h.Forms.Execute(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}
