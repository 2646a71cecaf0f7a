package database

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type ProgressRepository struct {
	DB Pool
}

func NewProgressRepository(db Pool) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindProgress(ctx context.Context, email string) (*entity.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var p entity.Progress
	err := pgxscan.Get(ctx, r.DB, &p,
		`SELECT email, form_data, current_page, token FROM user_progress WHERE email = $1`, email)
	if pgxscan.NotFound(err) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) CreateProgress(ctx context.Context, p *entity.Progress) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	_, err := r.DB.Exec(ctx,
		`INSERT INTO user_progress (email, form_data, current_page, token) VALUES ($1, $2, $3, $4)`,
		p.Email, jsonArg(p.FormData), p.CurrentPage, p.Token)
	return err
}

func (r *ProgressRepository) UpdateProgress(ctx context.Context, p *entity.Progress) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	tag, err := r.DB.Exec(ctx,
		`UPDATE user_progress
		 SET form_data = $2, current_page = $3, token = $4, updated_at = NOW()
		 WHERE email = $1`,
		p.Email, jsonArg(p.FormData), p.CurrentPage, p.Token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// jsonArg sends an empty document as SQL NULL.
func jsonArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
