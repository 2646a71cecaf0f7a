package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/infra/http/middleware"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

type PhoneVerifier interface {
	RequestCode(ctx context.Context, in usecase.RequestAuthCodeRequest) (*usecase.MessageOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyAuthCodeRequest) (*usecase.MessageOutput, error)
}

type EmailVerifier interface {
	RequestVerification(ctx context.Context, in usecase.EmailRequest) (*usecase.MessageOutput, error)
	Confirm(ctx context.Context, token string) (*usecase.MessageOutput, error)
	Status(ctx context.Context, in usecase.EmailRequest) (*usecase.EmailStatusOutput, error)
}

type VerificationHandler struct {
	Phone  PhoneVerifier
	Email  EmailVerifier
	Logger *zap.Logger
}

func NewVerificationHandler(phone PhoneVerifier, email EmailVerifier, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{Phone: phone, Email: email, Logger: logger}
}

func (h *VerificationHandler) RequestAuthCode(w http.ResponseWriter, r *http.Request) {
	var in usecase.RequestAuthCodeRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	out, err := h.Phone.RequestCode(r.Context(), in)
	h.respond(w, "sms", "code_sent", out, err)
}

func (h *VerificationHandler) VerifyAuthCode(w http.ResponseWriter, r *http.Request) {
	var in usecase.VerifyAuthCodeRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	out, err := h.Phone.VerifyCode(r.Context(), in)
	h.respond(w, "sms", "verified", out, err)
}

func (h *VerificationHandler) EmailAuth(w http.ResponseWriter, r *http.Request) {
	var in usecase.EmailRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	out, err := h.Email.RequestVerification(r.Context(), in)
	h.respond(w, "email", "link_sent", out, err)
}

func (h *VerificationHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	out, err := h.Email.Confirm(r.Context(), chi.URLParam(r, "token"))
	h.respond(w, "email", "verified", out, err)
}

func (h *VerificationHandler) EmailVerifiedStatus(w http.ResponseWriter, r *http.Request) {
	var in usecase.EmailRequest
	if err := decode(r, &in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	out, err := h.Email.Status(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VerificationHandler) respond(w http.ResponseWriter, channel, success string, out *usecase.MessageOutput, err error) {
	if err != nil {
		outcome := "error"
		var de *usecase.DomainError
		if errors.As(err, &de) {
			outcome = de.Code
		}
		middleware.RecordVerification(channel, outcome)
		writeError(w, h.Logger, err)
		return
	}
	middleware.RecordVerification(channel, success)
	writeJSON(w, http.StatusOK, out)
}
