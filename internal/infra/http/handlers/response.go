package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/infra/http/middleware"
	"github.com/automatedtaxcredits/intake-api/internal/usecase"
)

var errInvalidJSON = &usecase.DomainError{Code: usecase.CodeInvalidJSON, Message: "Invalid JSON"}

// decode reads a JSON body into dst. An empty body decodes as {} so the
// required-field checks report the missing field.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errInvalidJSON
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRaw passes an upstream body through untouched.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeError renders a use case error. Domain errors carry only a message;
// technical ones add the underlying detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := usecase.StatusFor(err)

	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, status, errorResponse{Message: de.Message})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		middleware.RecordIntegrationError(serviceFor(te.Code))
		logger.Error("❌ request failed", zap.String("code", te.Code), zap.Error(te))
		writeJSON(w, status, errorResponse{Message: te.Message, Error: te.Detail()})
		return
	}

	logger.Error("❌ unexpected error", zap.Error(err))
	writeJSON(w, status, errorResponse{Message: usecase.UpstreamFailureMessage, Error: err.Error()})
}

func serviceFor(code string) string {
	switch code {
	case usecase.CodeUpstreamCall, usecase.CodeUpstreamAuth:
		return "upstream"
	case usecase.CodeStore:
		return "store"
	case usecase.CodeMessaging:
		return "messaging"
	default:
		return "internal"
	}
}
