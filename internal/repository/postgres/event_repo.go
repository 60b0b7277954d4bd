package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

const eventColumns = `id, title, description, starts_at, location, image_path, print_on_attend, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.Location,
		&e.ImagePath, &e.PrintOnAttend, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, starts_at, location, image_path, print_on_attend, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartsAt, e.Location, e.ImagePath, e.PrintOnAttend, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, starts_at = $3, location = $4,
			image_path = $5, print_on_attend = $6, updated_at = $7
		WHERE id = $8
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.StartsAt, e.Location, e.ImagePath, e.PrintOnAttend, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at DESC`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at >= $1 ORDER BY starts_at`
	return r.queryEvents(ctx, query, from)
}

func (r *eventRepository) ListWithAttendees(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE EXISTS (SELECT 1 FROM event_attendees a WHERE a.event_id = e.id)
		ORDER BY starts_at DESC
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) EarliestUpcomingID(ctx context.Context, from time.Time) (string, error) {
	query := `SELECT id FROM events WHERE starts_at >= $1 ORDER BY starts_at LIMIT 1`
	var id string
	if err := r.DB.QueryRowContext(ctx, query, from).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
