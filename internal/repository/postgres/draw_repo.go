package postgres

import (
	"context"
	"database/sql"

	"github.com/Litjoaco/inacap/internal/domain"
)

type drawRepository struct {
	DB *sql.DB
}

func NewDrawRepository(db *sql.DB) domain.DrawRepository {
	return &drawRepository{DB: db}
}

func (r *drawRepository) Create(ctx context.Context, record *domain.DrawRecord) error {
	query := `
		INSERT INTO draw_records (winner_id, pool_description, drawn_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, record.WinnerID, record.PoolDescription, record.DrawnAt).
		Scan(&record.ID)
}

func (r *drawRepository) ListRecent(ctx context.Context, limit int) ([]*domain.DrawRecord, error) {
	query := `
		SELECT id, winner_id, pool_description, drawn_at
		FROM draw_records
		ORDER BY drawn_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.DrawRecord
	for rows.Next() {
		rec := &domain.DrawRecord{}
		if err := rows.Scan(&rec.ID, &rec.WinnerID, &rec.PoolDescription, &rec.DrawnAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.DrawRecord{}
	}
	return records, nil
}

func (r *drawRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM draw_records`)
	return err
}

func (r *drawRepository) ListMemberPool(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'member' ORDER BY name, last_name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
