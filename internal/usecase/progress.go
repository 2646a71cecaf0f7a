package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// CodeResponseSubmitted is the identity-check webhook code for a finished step.
const CodeResponseSubmitted = 7002

type ProgressUseCase struct {
	Store  ProgressStore
	Logger *zap.Logger
}

func NewProgressUseCase(store ProgressStore, logger *zap.Logger) *ProgressUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressUseCase{Store: store, Logger: logger}
}

// OnWebhookEvent advances the applicant's page by one on a 7002 event.
// Duplicate deliveries advance it again.
func (uc *ProgressUseCase) OnWebhookEvent(ctx context.Context, ev WebhookEvent) error {
	if !isSubmittedCode(ev.Code) || !ev.VendorData.Present() {
		return nil
	}

	email := ev.VendorData.Value
	p, err := uc.Store.FindProgress(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		uc.Logger.Info("no progress for webhook vendor", zap.String("email", email))
		return nil
	}
	if err != nil {
		return storeFailure("Failed to load progress", err)
	}

	p.Advance()
	if err := uc.Store.UpdateProgress(ctx, p); err != nil {
		return storeFailure("Failed to save progress", err)
	}

	uc.Logger.Info("➡️ progress advanced",
		zap.String("email", email),
		zap.String("current_page", p.CurrentPage),
	)
	return nil
}

func (uc *ProgressUseCase) Save(ctx context.Context, in SaveProgressRequest) (*MessageOutput, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	p := &entity.Progress{
		Email:       in.Email.Value,
		FormData:    in.FormData,
		CurrentPage: in.CurrentPage.Value,
		Token:       in.Token.Value,
	}

	_, err := uc.Store.FindProgress(ctx, p.Email)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		err = uc.Store.CreateProgress(ctx, p)
	case err == nil:
		err = uc.Store.UpdateProgress(ctx, p)
	}
	if err != nil {
		return nil, storeFailure("Failed to save progress", err)
	}

	return &MessageOutput{Message: "Progress saved"}, nil
}

func (uc *ProgressUseCase) Load(ctx context.Context, email string) (*entity.Progress, error) {
	if strings.TrimSpace(email) == "" {
		return nil, missingField("email")
	}

	p, err := uc.Store.FindProgress(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodeProgressNotFound, Message: "Progress not found", Field: "email"}
	}
	if err != nil {
		return nil, storeFailure("Failed to load progress", err)
	}
	return p, nil
}

func isSubmittedCode(code Text) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(code.Value), 64)
	return err == nil && f == CodeResponseSubmitted
}
