package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

const (
	minVerificationCode = 123456
	maxVerificationCode = 987654
)

// RandomCode draws a verification code uniformly from [123456, 987654].
func RandomCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxVerificationCode-minVerificationCode+1))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + minVerificationCode, nil
}

type PhoneVerificationUseCase struct {
	Store   PhoneVerificationStore
	SMS     SMSSender
	NewCode func() (int, error)
	Logger  *zap.Logger
}

func NewPhoneVerificationUseCase(store PhoneVerificationStore, sms SMSSender, logger *zap.Logger) *PhoneVerificationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhoneVerificationUseCase{
		Store:   store,
		SMS:     sms,
		NewCode: RandomCode,
		Logger:  logger,
	}
}

// RequestCode issues a new code for the phone, overwriting any previous one,
// and texts it. Codes have no expiry and no attempt limit.
func (uc *PhoneVerificationUseCase) RequestCode(ctx context.Context, in RequestAuthCodeRequest) (*MessageOutput, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	phone := in.Phone.Value
	if !isValidPhoneNumber(phone) {
		return nil, &DomainError{Code: CodeInvalidPhone, Message: "Invalid phone number", Field: "phone"}
	}

	code, err := uc.NewCode()
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "Failed to generate verification code", Err: err}
	}

	existing, err := uc.Store.FindPhone(ctx, phone)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		err = uc.Store.CreatePhone(ctx, &entity.PhoneVerification{PhoneNumber: phone, Code: code})
	case err == nil:
		existing.Code = code
		err = uc.Store.UpdatePhone(ctx, existing)
	}
	if err != nil {
		return nil, storeFailure("Failed to store verification code", err)
	}

	if err := uc.SMS.SendSMS(ctx, phone, fmt.Sprintf("Your verification code is %d", code)); err != nil {
		return nil, &TechnicalError{Code: CodeMessaging, Message: "Failed to send verification code", Err: err}
	}

	uc.Logger.Info("📱 verification code sent", zap.String("phone", phone))
	return &MessageOutput{Message: "Verification code sent"}, nil
}

func (uc *PhoneVerificationUseCase) VerifyCode(ctx context.Context, in VerifyAuthCodeRequest) (*MessageOutput, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	phone := in.PhoneNumber.Value
	rec, err := uc.Store.FindPhone(ctx, phone)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodePhoneNotFound, Message: "Phone number not found", Field: "phone_number"}
	}
	if err != nil {
		return nil, storeFailure("Failed to load verification code", err)
	}

	supplied, ok := leadingInt(in.Code.Value)
	if !ok || rec.Code != supplied || rec.PhoneNumber != phone {
		return nil, &DomainError{Code: CodeCodeMismatch, Message: "Invalid verification code", Field: "code"}
	}

	return &MessageOutput{Message: "Phone number verified"}, nil
}

// leadingInt parses the leading base-10 integer of s, ignoring anything after it.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
