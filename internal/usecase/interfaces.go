package usecase

import (
	"context"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type PhoneVerificationStore interface {
	FindPhone(ctx context.Context, phone string) (*entity.PhoneVerification, error)
	CreatePhone(ctx context.Context, v *entity.PhoneVerification) error
	UpdatePhone(ctx context.Context, v *entity.PhoneVerification) error
}

type EmailVerificationStore interface {
	FindEmail(ctx context.Context, email string) (*entity.EmailVerification, error)
	CreateEmail(ctx context.Context, v *entity.EmailVerification) error
	UpdateEmail(ctx context.Context, v *entity.EmailVerification) error
}

type ProgressStore interface {
	FindProgress(ctx context.Context, email string) (*entity.Progress, error)
	CreateProgress(ctx context.Context, p *entity.Progress) error
	UpdateProgress(ctx context.Context, p *entity.Progress) error
}

// FormStore persists mapped form-tool submissions and returns the store's response body.
type FormStore interface {
	SaveFormSubmission(ctx context.Context, s *entity.FormSubmission) ([]byte, error)
}

type StageSource interface {
	ListStages(ctx context.Context) ([]entity.StageCount, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}

type ReportMailer interface {
	SendReport(ctx context.Context, to, subject, body string) error
}

// EmailTokenIssuer signs and checks the email verification link token.
type EmailTokenIssuer interface {
	Issue(email string) (string, error)
	Verify(token string) (email string, err error)
}

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, ev entity.LeadEvent) error
}

type MessageOutput struct {
	Message string `json:"message"`
}

type EmailStatusOutput struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}
