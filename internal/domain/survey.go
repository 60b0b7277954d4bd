package domain

import (
	"context"
	"time"
)

// Survey is the satisfaction survey of an event. An event has at most one.
// swagger:model Survey
type Survey struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	// Active gates visibility: members only see and answer active surveys.
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// SurveyResponse is one member's answer. (SurveyID, UserID) is unique.
// swagger:model SurveyResponse
type SurveyResponse struct {
	ID       string `json:"id"`
	SurveyID string `json:"survey_id"`
	UserID   string `json:"user_id"`
	// Score is 1 (very bad) through 5 (excellent).
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
	// Featured marks the response as a home-page testimonial. Admin only.
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingSurvey pairs an unanswered active survey with its event.
type PendingSurvey struct {
	Survey *Survey `json:"survey"`
	Event  *Event  `json:"event"`
}

// SurveyWithAverage bundles a survey's responses with their mean score.
// Average is nil while there are no responses.
type SurveyWithAverage struct {
	Survey    *Survey           `json:"survey"`
	Responses []*SurveyResponse `json:"responses"`
	Average   *float64          `json:"average"`
}

// SurveyRepository defines the interface for survey storage.
type SurveyRepository interface {
	Create(ctx context.Context, survey *Survey) error
	GetByID(ctx context.Context, id string) (*Survey, error)
	GetByEventID(ctx context.Context, eventID string) (*Survey, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Survey, error)

	CreateResponse(ctx context.Context, resp *SurveyResponse) error
	GetResponse(ctx context.Context, id string) (*SurveyResponse, error)
	HasResponded(ctx context.Context, surveyID, userID string) (bool, error)
	ListResponses(ctx context.Context, surveyID string) ([]*SurveyResponse, error)
	SetResponseFeatured(ctx context.Context, responseID string, featured bool) error
	// ListTestimonials returns featured responses with non-empty comments,
	// newest first.
	ListTestimonials(ctx context.Context) ([]*SurveyResponse, error)
}

// SurveyService defines survey business logic.
type SurveyService interface {
	Create(ctx context.Context, actor *Actor, eventID, title string) (*Survey, error)
	Delete(ctx context.Context, actor *Actor, surveyID string) error
	List(ctx context.Context, actor *Actor) ([]*Survey, error)
	Responses(ctx context.Context, actor *Actor, surveyID string) (*SurveyWithAverage, error)
	ToggleResponseFeatured(ctx context.Context, actor *Actor, responseID string) (bool, error)
	// Respond records the caller's answer. Only attendees of the survey's
	// event may answer, only while the survey is active, and only once.
	Respond(ctx context.Context, actor *Actor, surveyID string, score int, comment string) (*SurveyResponse, error)
	PendingForUser(ctx context.Context, actor *Actor) ([]*PendingSurvey, error)
}
