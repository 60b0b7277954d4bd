package postgres

import (
	"context"
	"database/sql"

	"github.com/Litjoaco/inacap/internal/domain"
)

type statsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &statsRepository{DB: db}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	return r.scalar(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *statsRepository) CountEvents(ctx context.Context) (int, error) {
	return r.scalar(ctx, `SELECT COUNT(*) FROM events`)
}

func (r *statsRepository) SumAttendances(ctx context.Context) (int, error) {
	return r.scalar(ctx, `SELECT COALESCE(SUM(attendance_count), 0) FROM users`)
}

func (r *statsRepository) CountInterested(ctx context.Context, eventID string) (int, error) {
	return r.scalar(ctx, `SELECT COUNT(*) FROM event_interested WHERE event_id = $1`, eventID)
}

func (r *statsRepository) CountAttendees(ctx context.Context, eventID string) (int, error) {
	return r.scalar(ctx, `SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`, eventID)
}

// AverageScore returns nil when there are no responses so callers can report
// "not applicable" instead of a zero that looks like a score.
func (r *statsRepository) AverageScore(ctx context.Context, eventID string) (*float64, error) {
	var (
		avg sql.NullFloat64
		err error
	)
	if eventID == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT AVG(score) FROM survey_responses`).Scan(&avg)
	} else {
		query := `
			SELECT AVG(sr.score)
			FROM survey_responses sr
			INNER JOIN surveys s ON s.id = sr.survey_id
			WHERE s.event_id = $1
		`
		err = r.DB.QueryRowContext(ctx, query, eventID).Scan(&avg)
	}
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *statsRepository) ScoreDistribution(ctx context.Context, eventID string) ([]domain.CategoryCount, error) {
	if eventID == "" {
		query := `
			SELECT score::text, COUNT(*)
			FROM survey_responses
			GROUP BY score
			ORDER BY score
		`
		return r.categories(ctx, query)
	}
	query := `
		SELECT sr.score::text, COUNT(*)
		FROM survey_responses sr
		INNER JOIN surveys s ON s.id = sr.survey_id
		WHERE s.event_id = $1
		GROUP BY sr.score
		ORDER BY sr.score
	`
	return r.categories(ctx, query, eventID)
}

// groupedUserField counts users grouped by an enumerated profile field,
// resolving the "otro" free-text override at query time.
func (r *statsRepository) groupedUserField(ctx context.Context, field, eventID string, limit int) ([]domain.CategoryCount, error) {
	expr := `CASE WHEN u.` + field + ` = 'otro' AND u.` + field + `_other <> '' THEN u.` + field + `_other ELSE u.` + field + ` END`
	if eventID == "" {
		query := `
			SELECT ` + expr + ` AS label, COUNT(*)
			FROM users u
			WHERE u.` + field + ` <> ''
			GROUP BY label
			ORDER BY COUNT(*) DESC
			LIMIT $1
		`
		return r.categories(ctx, query, limit)
	}
	query := `
		SELECT ` + expr + ` AS label, COUNT(*)
		FROM users u
		INNER JOIN event_attendees a ON a.user_id = u.id
		WHERE a.event_id = $1 AND u.` + field + ` <> ''
		GROUP BY label
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	return r.categories(ctx, query, eventID, limit)
}

func (r *statsRepository) TopAffiliations(ctx context.Context, eventID string, limit int) ([]domain.CategoryCount, error) {
	return r.groupedUserField(ctx, "affiliation", eventID, limit)
}

func (r *statsRepository) TopCampuses(ctx context.Context, eventID string, limit int) ([]domain.CategoryCount, error) {
	return r.groupedUserField(ctx, "campus", eventID, limit)
}

func (r *statsRepository) TopPrograms(ctx context.Context, eventID string, limit int) ([]domain.CategoryCount, error) {
	return r.groupedUserField(ctx, "program", eventID, limit)
}

func (r *statsRepository) CountByRole(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role
		ORDER BY COUNT(*) DESC
	`
	return r.categories(ctx, query)
}

func (r *statsRepository) RecentAttendance(ctx context.Context, limit int) ([]domain.EventAttendance, error) {
	// Latest events first in SQL, then reversed into chronological order.
	query := `
		SELECT ` + eventColumns + `, (SELECT COUNT(*) FROM event_attendees a WHERE a.event_id = events.id)
		FROM events
		ORDER BY starts_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EventAttendance
	for rows.Next() {
		e := &domain.Event{}
		var count int
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.Location,
			&e.ImagePath, &e.PrintOnAttend, &e.CreatedAt, &e.UpdatedAt, &count,
		); err != nil {
			return nil, err
		}
		items = append(items, domain.EventAttendance{Event: e, Attendees: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	if items == nil {
		items = []domain.EventAttendance{}
	}
	return items, nil
}

func (r *statsRepository) scalar(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *statsRepository) categories(ctx context.Context, query string, args ...any) ([]domain.CategoryCount, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CategoryCount{}
	}
	return items, nil
}
