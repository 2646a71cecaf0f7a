package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusUpstreamFailure is what the funnel frontend expects when the CRM or
// another downstream call fails. It is not a registered HTTP status.
const StatusUpstreamFailure = 442

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidPhone     = "INVALID_PHONE"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeEmailNotFound    = "EMAIL_NOT_FOUND"
	CodeCodeMismatch     = "CODE_MISMATCH"
	CodePhoneNotFound    = "PHONE_NOT_FOUND"
	CodeProgressNotFound = "PROGRESS_NOT_FOUND"
	CodeUpstreamCall     = "UPSTREAM_CALL"
	CodeUpstreamAuth     = "UPSTREAM_AUTH"
	CodeStore            = "STORE_ERROR"
	CodeMessaging        = "MESSAGING_ERROR"
	CodeInternal         = "INTERNAL"
)

var statusByCode = map[string]int{
	CodeValidation:       http.StatusBadRequest,
	CodeInvalidJSON:      http.StatusBadRequest,
	CodeInvalidPhone:     http.StatusBadRequest,
	CodeInvalidToken:     http.StatusBadRequest,
	CodeEmailNotFound:    http.StatusBadRequest,
	CodeCodeMismatch:     http.StatusForbidden,
	CodePhoneNotFound:    http.StatusNotFound,
	CodeProgressNotFound: http.StatusNotFound,
	CodeUpstreamCall:     StatusUpstreamFailure,
	CodeUpstreamAuth:     http.StatusInternalServerError,
	CodeStore:            http.StatusInternalServerError,
	CodeMessaging:        http.StatusInternalServerError,
	CodeInternal:         http.StatusInternalServerError,
}

// UpstreamFailureMessage is the generic message of every 442 envelope.
const UpstreamFailureMessage = "An error occurred while processing the request."

// DomainError is a caller mistake or an expected negative outcome.
type DomainError struct {
	Code    string
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a failure of a collaborator (CRM, store, messaging).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

// Detail is the underlying error text reported in the "error" field of the envelope.
func (e *TechnicalError) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// StatusFor maps any error returned by a use case to its HTTP status.
func StatusFor(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		if s, ok := statusByCode[de.Code]; ok {
			return s
		}
		return http.StatusBadRequest
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		if s, ok := statusByCode[te.Code]; ok {
			return s
		}
	}
	return http.StatusInternalServerError
}

func missingField(field string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Field %s is required!", field),
		Field:   field,
	}
}

func storeFailure(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStore, Message: msg, Err: err}
}
