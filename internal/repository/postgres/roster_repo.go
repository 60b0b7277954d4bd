package postgres

import (
	"context"
	"database/sql"

	"github.com/Litjoaco/inacap/internal/domain"
)

// userColumnsQualified mirrors userColumns with a "u." prefix for joins where
// unqualified names would be ambiguous.
const userColumnsQualified = `
	u.id, u.name, u.last_name, u.rut, u.email, u.password_hash, u.salt, u.phone,
	u.affiliation, u.affiliation_other, u.campus, u.campus_other, u.program, u.program_other, u.institution,
	u.photo_path, u.qr_path, u.emoji_tag, u.role, u.attendance_count, u.public_profile, u.featured,
	u.created_at, u.updated_at
`

type rosterRepository struct {
	DB *sql.DB
}

func NewRosterRepository(db *sql.DB) domain.RosterRepository {
	return &rosterRepository{DB: db}
}

// AddAttendee is the conditional insert the check-in state machine relies on:
// under concurrent scans of the same badge exactly one call reports added.
func (r *rosterRepository) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		INSERT INTO event_attendees (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rosterRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rosterRepository) IsAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *rosterRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumnsQualified + `
		FROM users u
		INNER JOIN event_attendees a ON a.user_id = u.id
		WHERE a.event_id = $1
		ORDER BY u.name, u.last_name
	`
	return r.queryUsers(ctx, query, eventID)
}

func (r *rosterRepository) AddInterest(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		INSERT INTO event_interested (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rosterRepository) RemoveInterest(ctx context.Context, eventID, userID string) (bool, error) {
	query := `DELETE FROM event_interested WHERE event_id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rosterRepository) ListInterested(ctx context.Context, eventID string) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumnsQualified + `
		FROM users u
		INNER JOIN event_interested i ON i.user_id = u.id
		WHERE i.event_id = $1
		ORDER BY u.name, u.last_name
	`
	return r.queryUsers(ctx, query, eventID)
}

func (r *rosterRepository) ListAttendedEventIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT event_id FROM event_attendees WHERE user_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *rosterRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
