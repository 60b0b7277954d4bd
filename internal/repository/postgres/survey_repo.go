package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Litjoaco/inacap/internal/domain"
)

type surveyRepository struct {
	DB *sql.DB
}

func NewSurveyRepository(db *sql.DB) domain.SurveyRepository {
	return &surveyRepository{DB: db}
}

func (r *surveyRepository) Create(ctx context.Context, s *domain.Survey) error {
	query := `
		INSERT INTO surveys (event_id, title, active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.EventID, s.Title, s.Active, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// One survey per event.
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *surveyRepository) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	query := `SELECT id, event_id, title, active, created_at FROM surveys WHERE id = $1`
	s := &domain.Survey{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.EventID, &s.Title, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *surveyRepository) GetByEventID(ctx context.Context, eventID string) (*domain.Survey, error) {
	query := `SELECT id, event_id, title, active, created_at FROM surveys WHERE event_id = $1`
	s := &domain.Survey{}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&s.ID, &s.EventID, &s.Title, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *surveyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
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

func (r *surveyRepository) List(ctx context.Context) ([]*domain.Survey, error) {
	query := `SELECT id, event_id, title, active, created_at FROM surveys ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surveys []*domain.Survey
	for rows.Next() {
		s := &domain.Survey{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.Title, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if surveys == nil {
		surveys = []*domain.Survey{}
	}
	return surveys, nil
}

func (r *surveyRepository) CreateResponse(ctx context.Context, resp *domain.SurveyResponse) error {
	query := `
		INSERT INTO survey_responses (survey_id, user_id, score, comment, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		resp.SurveyID, resp.UserID, resp.Score, resp.Comment, resp.Featured, resp.CreatedAt,
	).Scan(&resp.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyResponded
		}
		return err
	}
	return nil
}

func (r *surveyRepository) GetResponse(ctx context.Context, id string) (*domain.SurveyResponse, error) {
	query := `
		SELECT id, survey_id, user_id, score, comment, featured, created_at
		FROM survey_responses
		WHERE id = $1
	`
	return scanResponse(r.DB.QueryRowContext(ctx, query, id))
}

func scanResponse(row rowScanner) (*domain.SurveyResponse, error) {
	resp := &domain.SurveyResponse{}
	err := row.Scan(&resp.ID, &resp.SurveyID, &resp.UserID, &resp.Score, &resp.Comment, &resp.Featured, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *surveyRepository) HasResponded(ctx context.Context, surveyID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM survey_responses WHERE survey_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, surveyID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *surveyRepository) ListResponses(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	query := `
		SELECT id, survey_id, user_id, score, comment, featured, created_at
		FROM survey_responses
		WHERE survey_id = $1
		ORDER BY created_at DESC
	`
	return r.queryResponses(ctx, query, surveyID)
}

func (r *surveyRepository) SetResponseFeatured(ctx context.Context, responseID string, featured bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE survey_responses SET featured = $1 WHERE id = $2`, featured, responseID)
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

func (r *surveyRepository) ListTestimonials(ctx context.Context) ([]*domain.SurveyResponse, error) {
	query := `
		SELECT id, survey_id, user_id, score, comment, featured, created_at
		FROM survey_responses
		WHERE featured = TRUE AND comment <> ''
		ORDER BY created_at DESC
	`
	return r.queryResponses(ctx, query)
}

func (r *surveyRepository) queryResponses(ctx context.Context, query string, args ...any) ([]*domain.SurveyResponse, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resps []*domain.SurveyResponse
	for rows.Next() {
		resp := &domain.SurveyResponse{}
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.UserID, &resp.Score, &resp.Comment, &resp.Featured, &resp.CreatedAt); err != nil {
			return nil, err
		}
		resps = append(resps, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if resps == nil {
		resps = []*domain.SurveyResponse{}
	}
	return resps, nil
}
