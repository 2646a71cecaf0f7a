package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type EmailVerificationUseCase struct {
	Store         EmailVerificationStore
	Tokens        EmailTokenIssuer
	Mailer        VerificationMailer
	ClientBaseURL string
	Logger        *zap.Logger
}

func NewEmailVerificationUseCase(
	store EmailVerificationStore,
	tokens EmailTokenIssuer,
	mailer VerificationMailer,
	clientBaseURL string,
	logger *zap.Logger,
) *EmailVerificationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailVerificationUseCase{
		Store:         store,
		Tokens:        tokens,
		Mailer:        mailer,
		ClientBaseURL: strings.TrimRight(clientBaseURL, "/"),
		Logger:        logger,
	}
}

// RequestVerification sends a confirmation link unless the stored token is still valid.
func (uc *EmailVerificationUseCase) RequestVerification(ctx context.Context, in EmailRequest) (*MessageOutput, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	email := in.Email.Value

	rec, err := uc.Store.FindEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, storeFailure("Failed to load email verification", err)
	}

	if rec != nil {
		if _, verr := uc.Tokens.Verify(rec.Token); verr == nil {
			return &MessageOutput{Message: "Verification email already sent"}, nil
		}
	}

	token, err := uc.Tokens.Issue(email)
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "Failed to issue verification token", Err: err}
	}

	if rec == nil {
		err = uc.Store.CreateEmail(ctx, &entity.EmailVerification{
			Email:      email,
			Token:      token,
			IsVerified: entity.EmailNotVerified,
		})
	} else {
		rec.Token = token
		err = uc.Store.UpdateEmail(ctx, rec)
	}
	if err != nil {
		return nil, storeFailure("Failed to store email verification", err)
	}

	if err := uc.Mailer.SendVerificationEmail(ctx, email, uc.link(token)); err != nil {
		return nil, &TechnicalError{Code: CodeMessaging, Message: "Failed to send verification email", Err: err}
	}

	uc.Logger.Info("📧 verification email sent", zap.String("email", email))
	return &MessageOutput{Message: "Verification email sent"}, nil
}

// Confirm consumes a link token. Confirming twice is harmless.
func (uc *EmailVerificationUseCase) Confirm(ctx context.Context, token string) (*MessageOutput, error) {
	email, err := uc.Tokens.Verify(token)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidToken, Message: "Invalid or expired token", Field: "token"}
	}

	rec, err := uc.Store.FindEmail(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodeEmailNotFound, Message: "Email not found", Field: "email"}
	}
	if err != nil {
		return nil, storeFailure("Failed to load email verification", err)
	}

	if rec.Verified() {
		return &MessageOutput{Message: "Email already verified"}, nil
	}

	rec.IsVerified = entity.EmailVerified
	if err := uc.Store.UpdateEmail(ctx, rec); err != nil {
		return nil, storeFailure("Failed to update email verification", err)
	}

	return &MessageOutput{Message: "Email verified successfully"}, nil
}

func (uc *EmailVerificationUseCase) Status(ctx context.Context, in EmailRequest) (*EmailStatusOutput, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	rec, err := uc.Store.FindEmail(ctx, in.Email.Value)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, storeFailure("Failed to load email verification", err)
	}

	if rec != nil && rec.Verified() {
		return &EmailStatusOutput{Verified: true, Message: "Email is verified"}, nil
	}
	return &EmailStatusOutput{Verified: false, Message: "Email is not verified"}, nil
}

func (uc *EmailVerificationUseCase) link(token string) string {
	return uc.ClientBaseURL + "/verify-email/" + token
}
