package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

type eventService struct {
	eventRepo  domain.EventRepository
	rosterRepo domain.RosterRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, rosterRepo domain.RosterRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, rosterRepo: rosterRepo}
}

func (s *eventService) Create(ctx context.Context, actor *domain.Actor, event *domain.Event) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: start time is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *eventService) Update(ctx context.Context, actor *domain.Actor, event *domain.Event) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	existing.Title = event.Title
	existing.Description = event.Description
	existing.StartsAt = event.StartsAt
	existing.Location = event.Location
	existing.PrintOnAttend = event.PrintOnAttend
	if event.ImagePath != "" {
		existing.ImagePath = event.ImagePath
	}
	existing.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	*event = *existing
	return nil
}

func (s *eventService) Delete(ctx context.Context, actor *domain.Actor, eventID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, eventID)
}

func (s *eventService) Get(ctx context.Context, actor *domain.Actor, eventID string) (*domain.Event, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) List(ctx context.Context, actor *domain.Actor) ([]*domain.Event, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.eventRepo.List(ctx)
}

func (s *eventService) Upcoming(ctx context.Context) ([]*domain.UpcomingEvent, error) {
	now := time.Now()
	events, err := s.eventRepo.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	upcoming := make([]*domain.UpcomingEvent, 0, len(events))
	for _, e := range events {
		days := int(e.StartsAt.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		upcoming = append(upcoming, &domain.UpcomingEvent{Event: e, DaysRemaining: days})
	}
	return upcoming, nil
}

func (s *eventService) ListWithInterested(ctx context.Context, actor *domain.Actor) ([]*domain.EventWithInterested, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	result := make([]*domain.EventWithInterested, 0, len(events))
	for _, e := range events {
		users, err := s.rosterRepo.ListInterested(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list interested for event %s: %w", e.ID, err)
		}
		views := make([]*domain.PublicProfileView, len(users))
		for i, u := range users {
			views[i] = u.PublicView()
		}
		result = append(result, &domain.EventWithInterested{Event: e, Interested: views})
	}
	return result, nil
}

func requireStaff(actor *domain.Actor) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if !actor.User.Role.IsStaff() {
		return domain.ErrForbidden
	}
	return nil
}

func requireAdmin(actor *domain.Actor) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
