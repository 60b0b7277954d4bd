package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
	"github.com/Litjoaco/inacap/internal/metrics"
)

const (
	recentWinnersLimit = 10
	shortNameMax       = 10
)

type drawService struct {
	drawRepo   domain.DrawRepository
	eventRepo  domain.EventRepository
	rosterRepo domain.RosterRepository
	userRepo   domain.UserRepository
}

// NewDrawService creates a DrawService with the given repositories.
func NewDrawService(drawRepo domain.DrawRepository, eventRepo domain.EventRepository, rosterRepo domain.RosterRepository, userRepo domain.UserRepository) domain.DrawService {
	return &drawService{
		drawRepo:   drawRepo,
		eventRepo:  eventRepo,
		rosterRepo: rosterRepo,
		userRepo:   userRepo,
	}
}

func (s *drawService) PoolEvents(ctx context.Context, actor *domain.Actor) ([]*domain.Event, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListWithAttendees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool events: %w", err)
	}
	return events, nil
}

func (s *drawService) Participants(ctx context.Context, actor *domain.Actor, poolID string) ([]*domain.DrawParticipant, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if poolID == "" {
		return nil, fmt.Errorf("%w: no participant pool specified", domain.ErrInvalidInput)
	}

	var (
		users []*domain.User
		err   error
	)
	if poolID == domain.PoolAll {
		users, err = s.drawRepo.ListMemberPool(ctx)
	} else {
		if _, err := s.eventRepo.GetByID(ctx, poolID); err != nil {
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		users, err = s.rosterRepo.ListAttendees(ctx, poolID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*domain.DrawParticipant, len(users))
	for i, u := range users {
		participants[i] = &domain.DrawParticipant{
			ID:          u.ID,
			FullName:    u.Name + " " + u.LastName,
			ShortName:   shortName(u.Name),
			Affiliation: u.AffiliationDisplay(),
			PhotoPath:   u.PhotoPath,
		}
	}
	return participants, nil
}

// shortName is the first given name, truncated to fit on a roulette slice.
func shortName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	if len([]rune(first)) > shortNameMax {
		return string([]rune(first)[:shortNameMax-1]) + "."
	}
	return first
}

func (s *drawService) RecordWinner(ctx context.Context, actor *domain.Actor, winnerID, poolID string) (*domain.DrawRecord, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, winnerID); err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	// The description is resolved now so later event renames or roster edits
	// do not rewrite the history.
	description := "Desconocido"
	if poolID == domain.PoolAll {
		description = "Todos los Usuarios"
	} else if poolID != "" {
		event, err := s.eventRepo.GetByID(ctx, poolID)
		if err != nil {
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		description = "Asistentes a " + event.Title
	}

	record := &domain.DrawRecord{
		WinnerID:        winnerID,
		PoolDescription: description,
		DrawnAt:         time.Now(),
	}
	if err := s.drawRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}
	metrics.Draws.Inc()
	return record, nil
}

func (s *drawService) RecentWinners(ctx context.Context, actor *domain.Actor) ([]*domain.DrawRecord, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.drawRepo.ListRecent(ctx, recentWinnersLimit)
}

func (s *drawService) ClearHistory(ctx context.Context, actor *domain.Actor) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.drawRepo.DeleteAll(ctx)
}
