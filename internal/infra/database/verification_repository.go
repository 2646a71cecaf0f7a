package database

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// VerificationRepository stores phone codes and email tokens. Writes are
// plain INSERT/UPDATE; the caller decides which one after a lookup.
type VerificationRepository struct {
	DB Pool
}

func NewVerificationRepository(db Pool) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

func (r *VerificationRepository) FindPhone(ctx context.Context, phone string) (*entity.PhoneVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var v entity.PhoneVerification
	err := pgxscan.Get(ctx, r.DB, &v,
		`SELECT phone_number, code FROM phone_verifications WHERE phone_number = $1`, phone)
	if pgxscan.NotFound(err) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) CreatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	_, err := r.DB.Exec(ctx,
		`INSERT INTO phone_verifications (phone_number, code) VALUES ($1, $2)`,
		v.PhoneNumber, v.Code)
	return err
}

func (r *VerificationRepository) UpdatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	tag, err := r.DB.Exec(ctx,
		`UPDATE phone_verifications SET code = $2, updated_at = NOW() WHERE phone_number = $1`,
		v.PhoneNumber, v.Code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *VerificationRepository) FindEmail(ctx context.Context, email string) (*entity.EmailVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var v entity.EmailVerification
	err := pgxscan.Get(ctx, r.DB, &v,
		`SELECT email, token, is_verified FROM email_verifications WHERE email = $1`, email)
	if pgxscan.NotFound(err) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) CreateEmail(ctx context.Context, v *entity.EmailVerification) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	_, err := r.DB.Exec(ctx,
		`INSERT INTO email_verifications (email, token, is_verified) VALUES ($1, $2, $3)`,
		v.Email, v.Token, v.IsVerified)
	return err
}

func (r *VerificationRepository) UpdateEmail(ctx context.Context, v *entity.EmailVerification) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	tag, err := r.DB.Exec(ctx,
		`UPDATE email_verifications SET token = $2, is_verified = $3, updated_at = NOW() WHERE email = $1`,
		v.Email, v.Token, v.IsVerified)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}
