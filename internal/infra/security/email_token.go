package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrEmptyEmailClaim = errors.New("token has no email claim")

type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// EmailTokenSigner issues HS256 tokens that carry the email being verified.
type EmailTokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewEmailTokenSigner(secret string, ttl time.Duration) *EmailTokenSigner {
	return &EmailTokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *EmailTokenSigner) Issue(email string) (string, error) {
	now := s.now()
	claims := EmailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign email token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the email claim.
func (s *EmailTokenSigner) Verify(token string) (string, error) {
	var claims EmailClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrEmptyEmailClaim
	}
	return claims.Email, nil
}
