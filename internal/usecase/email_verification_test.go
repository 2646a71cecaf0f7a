package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

var errExpired = errors.New("token is expired")

type emailFixture struct {
	store  *MockEmailStore
	tokens *MockTokens
	mailer *MockMailer
	uc     *EmailVerificationUseCase
}

func newEmailFixture() emailFixture {
	f := emailFixture{
		store:  new(MockEmailStore),
		tokens: new(MockTokens),
		mailer: new(MockMailer),
	}
	f.uc = NewEmailVerificationUseCase(f.store, f.tokens, f.mailer, "https://app.example.com/", nil)
	return f
}

func TestRequestVerificationNewEmail(t *testing.T) {
	f := newEmailFixture()

	f.store.On("FindEmail", mock.Anything, "jane@example.com").Return(nil, entity.ErrNotFound)
	f.tokens.On("Issue", "jane@example.com").Return("tok-1", nil)
	f.store.On("CreateEmail", mock.Anything, &entity.EmailVerification{
		Email: "jane@example.com", Token: "tok-1", IsVerified: "0",
	}).Return(nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "jane@example.com", "https://app.example.com/verify-email/tok-1").Return(nil)

	out, err := f.uc.RequestVerification(context.Background(), EmailRequest{Email: T("jane@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "Verification email sent", out.Message)
	f.store.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestRequestVerificationWithinWindowSendsNothing(t *testing.T) {
	f := newEmailFixture()

	rec := &entity.EmailVerification{Email: "jane@example.com", Token: "tok-live", IsVerified: "0"}
	f.store.On("FindEmail", mock.Anything, "jane@example.com").Return(rec, nil)
	f.tokens.On("Verify", "tok-live").Return("jane@example.com", nil)

	out, err := f.uc.RequestVerification(context.Background(), EmailRequest{Email: T("jane@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "Verification email already sent", out.Message)
	f.mailer.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything)
}

func TestRequestVerificationAfterWindowReissues(t *testing.T) {
	f := newEmailFixture()

	rec := &entity.EmailVerification{Email: "jane@example.com", Token: "tok-old", IsVerified: "0"}
	f.store.On("FindEmail", mock.Anything, "jane@example.com").Return(rec, nil)
	f.tokens.On("Verify", "tok-old").Return("", errExpired)
	f.tokens.On("Issue", "jane@example.com").Return("tok-new", nil)
	f.store.On("UpdateEmail", mock.Anything, mock.MatchedBy(func(v *entity.EmailVerification) bool {
		return v.Token == "tok-new" && v.IsVerified == "0"
	})).Return(nil)
	f.mailer.On("SendVerificationEmail", mock.Anything, "jane@example.com", "https://app.example.com/verify-email/tok-new").Return(nil)

	out, err := f.uc.RequestVerification(context.Background(), EmailRequest{Email: T("jane@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "Verification email sent", out.Message)
	f.store.AssertNotCalled(t, "CreateEmail", mock.Anything, mock.Anything)
	f.mailer.AssertExpectations(t)
}

func TestRequestVerificationStoreErrorIs500(t *testing.T) {
	f := newEmailFixture()
	f.store.On("FindEmail", mock.Anything, mock.Anything).Return(nil, errors.New("xano: status 502"))

	_, err := f.uc.RequestVerification(context.Background(), EmailRequest{Email: T("jane@example.com")})

	assert.Equal(t, http.StatusInternalServerError, StatusFor(err))
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newEmailFixture()

	rec := &entity.EmailVerification{Email: "jane@example.com", Token: "tok", IsVerified: "0"}
	f.tokens.On("Verify", "tok").Return("jane@example.com", nil)
	f.store.On("FindEmail", mock.Anything, "jane@example.com").Return(rec, nil)
	f.store.On("UpdateEmail", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := f.uc.Confirm(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", out.Message)
	assert.Equal(t, "1", rec.IsVerified)

	out, err = f.uc.Confirm(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Email already verified", out.Message)

	f.store.AssertNumberOfCalls(t, "UpdateEmail", 1)
}

func TestConfirmInvalidToken(t *testing.T) {
	f := newEmailFixture()
	f.tokens.On("Verify", "garbage").Return("", errors.New("token is malformed"))

	_, err := f.uc.Confirm(context.Background(), "garbage")

	assert.Equal(t, http.StatusBadRequest, StatusFor(err))
	assert.Equal(t, "Invalid or expired token", err.Error())
	f.store.AssertNotCalled(t, "FindEmail", mock.Anything, mock.Anything)
}

func TestConfirmUnknownEmail(t *testing.T) {
	f := newEmailFixture()
	f.tokens.On("Verify", "tok").Return("ghost@example.com", nil)
	f.store.On("FindEmail", mock.Anything, "ghost@example.com").Return(nil, entity.ErrNotFound)

	_, err := f.uc.Confirm(context.Background(), "tok")

	assert.Equal(t, http.StatusBadRequest, StatusFor(err))
	assert.Equal(t, "Email not found", err.Error())
}

func TestStatus(t *testing.T) {
	f := newEmailFixture()
	f.store.On("FindEmail", mock.Anything, "done@example.com").Return(&entity.EmailVerification{IsVerified: "1"}, nil)
	f.store.On("FindEmail", mock.Anything, "pending@example.com").Return(&entity.EmailVerification{IsVerified: "0"}, nil)
	f.store.On("FindEmail", mock.Anything, "ghost@example.com").Return(nil, entity.ErrNotFound)

	out, err := f.uc.Status(context.Background(), EmailRequest{Email: T("done@example.com")})
	require.NoError(t, err)
	assert.Equal(t, &EmailStatusOutput{Verified: true, Message: "Email is verified"}, out)

	for _, email := range []string{"pending@example.com", "ghost@example.com"} {
		out, err = f.uc.Status(context.Background(), EmailRequest{Email: T(email)})
		require.NoError(t, err)
		assert.Equal(t, &EmailStatusOutput{Verified: false, Message: "Email is not verified"}, out)
	}
}
