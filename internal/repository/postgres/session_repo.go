package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Litjoaco/inacap/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.AuthSession, error) {
	query := `
		SELECT id, user_id, created_at, expires_at
		FROM auth_sessions
		WHERE id = $1 AND expires_at > NOW()
	`
	s := &domain.AuthSession{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = $1`, id)
	return err
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM auth_sessions WHERE user_id = $1`, userID)
	return err
}
