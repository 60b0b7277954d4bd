package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

type surveyService struct {
	surveyRepo domain.SurveyRepository
	eventRepo  domain.EventRepository
	rosterRepo domain.RosterRepository
}

// NewSurveyService creates a SurveyService with the given repositories.
func NewSurveyService(surveyRepo domain.SurveyRepository, eventRepo domain.EventRepository, rosterRepo domain.RosterRepository) domain.SurveyService {
	return &surveyService{
		surveyRepo: surveyRepo,
		eventRepo:  eventRepo,
		rosterRepo: rosterRepo,
	}
}

func (s *surveyService) Create(ctx context.Context, actor *domain.Actor, eventID, title string) (*domain.Survey, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	survey := &domain.Survey{
		EventID:   eventID,
		Title:     strings.TrimSpace(title),
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) Delete(ctx context.Context, actor *domain.Actor, surveyID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.surveyRepo.Delete(ctx, surveyID)
}

func (s *surveyService) List(ctx context.Context, actor *domain.Actor) ([]*domain.Survey, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.surveyRepo.List(ctx)
}

func (s *surveyService) Responses(ctx context.Context, actor *domain.Actor, surveyID string) (*domain.SurveyWithAverage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	responses, err := s.surveyRepo.ListResponses(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	result := &domain.SurveyWithAverage{Survey: survey, Responses: responses}
	if len(responses) > 0 {
		sum := 0
		for _, r := range responses {
			sum += r.Score
		}
		avg := float64(sum) / float64(len(responses))
		result.Average = &avg
	}
	return result, nil
}

func (s *surveyService) ToggleResponseFeatured(ctx context.Context, actor *domain.Actor, responseID string) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}
	resp, err := s.surveyRepo.GetResponse(ctx, responseID)
	if err != nil {
		return false, fmt.Errorf("failed to get response: %w", err)
	}
	featured := !resp.Featured
	if err := s.surveyRepo.SetResponseFeatured(ctx, responseID, featured); err != nil {
		return false, fmt.Errorf("failed to set featured: %w", err)
	}
	return featured, nil
}

func (s *surveyService) Respond(ctx context.Context, actor *domain.Actor, surveyID string, score int, comment string) (*domain.SurveyResponse, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", domain.ErrInvalidInput)
	}
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	if !survey.Active {
		return nil, domain.ErrSurveyInactive
	}
	attended, err := s.rosterRepo.IsAttendee(ctx, survey.EventID, actor.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check attendance: %w", err)
	}
	if !attended {
		return nil, domain.ErrDidNotAttend
	}
	resp := &domain.SurveyResponse{
		SurveyID:  surveyID,
		UserID:    actor.User.ID,
		Score:     score,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now(),
	}
	if err := s.surveyRepo.CreateResponse(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *surveyService) PendingForUser(ctx context.Context, actor *domain.Actor) ([]*domain.PendingSurvey, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	eventIDs, err := s.rosterRepo.ListAttendedEventIDs(ctx, actor.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attended events: %w", err)
	}
	pending := []*domain.PendingSurvey{}
	for _, eventID := range eventIDs {
		survey, err := s.surveyRepo.GetByEventID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get survey for event %s: %w", eventID, err)
		}
		if !survey.Active {
			continue
		}
		answered, err := s.surveyRepo.HasResponded(ctx, survey.ID, actor.User.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check response: %w", err)
		}
		if answered {
			continue
		}
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		pending = append(pending, &domain.PendingSurvey{Survey: survey, Event: event})
	}
	return pending, nil
}
