package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

const (
	topCategoriesLimit   = 5
	recentAttendanceSpan = 10
)

type statsService struct {
	statsRepo  domain.StatsRepository
	eventRepo  domain.EventRepository
	rosterRepo domain.RosterRepository
	surveyRepo domain.SurveyRepository
	exporter   domain.ReportExporter
}

// NewStatsService creates a StatsService with the given repositories and exporter.
func NewStatsService(statsRepo domain.StatsRepository, eventRepo domain.EventRepository, rosterRepo domain.RosterRepository, surveyRepo domain.SurveyRepository, exporter domain.ReportExporter) domain.StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		eventRepo:  eventRepo,
		rosterRepo: rosterRepo,
		surveyRepo: surveyRepo,
		exporter:   exporter,
	}
}

func (s *statsService) EventStats(ctx context.Context, actor *domain.Actor, eventID string) (*domain.EventStats, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	eventID, err := s.scopeEventID(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	return s.eventStats(ctx, eventID)
}

// scopeEventID resolves which event the actor reports on when none was
// named. Helpers fall back to the earliest upcoming event; admins must name
// one explicitly. A named event is honored as-is for both roles.
func (s *statsService) scopeEventID(ctx context.Context, actor *domain.Actor, eventID string) (string, error) {
	if eventID != "" {
		return eventID, nil
	}
	if actor.User.Role == domain.RoleHelper {
		id, err := s.eventRepo.EarliestUpcomingID(ctx, time.Now())
		if err != nil {
			return "", fmt.Errorf("failed to resolve upcoming event: %w", err)
		}
		return id, nil
	}
	return "", fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
}

func (s *statsService) eventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	interested, err := s.statsRepo.CountInterested(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count interested: %w", err)
	}
	attendees, err := s.statsRepo.CountAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees: %w", err)
	}
	avg, err := s.statsRepo.AverageScore(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to average score: %w", err)
	}
	distribution, err := s.statsRepo.ScoreDistribution(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load score distribution: %w", err)
	}
	affiliations, err := s.statsRepo.TopAffiliations(ctx, eventID, topCategoriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliations: %w", err)
	}
	return &domain.EventStats{
		Event:             event,
		Interested:        interested,
		Attendees:         attendees,
		AverageScore:      avg,
		ScoreDistribution: distribution,
		TopAffiliations:   affiliations,
	}, nil
}

func (s *statsService) GlobalStats(ctx context.Context, actor *domain.Actor) (*domain.GlobalStats, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.globalStats(ctx)
}

func (s *statsService) globalStats(ctx context.Context) (*domain.GlobalStats, error) {
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	events, err := s.statsRepo.CountEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	attendances, err := s.statsRepo.SumAttendances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum attendances: %w", err)
	}
	avg, err := s.statsRepo.AverageScore(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to average score: %w", err)
	}
	recent, err := s.statsRepo.RecentAttendance(ctx, recentAttendanceSpan)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent attendance: %w", err)
	}
	affiliations, err := s.statsRepo.TopAffiliations(ctx, "", topCategoriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliations: %w", err)
	}
	byRole, err := s.statsRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	return &domain.GlobalStats{
		TotalUsers:       users,
		TotalEvents:      events,
		TotalAttendances: attendances,
		AverageScore:     avg,
		RecentAttendance: recent,
		TopAffiliations:  affiliations,
		UsersByRole:      byRole,
	}, nil
}

func (s *statsService) Home(ctx context.Context) (*domain.HomeStats, error) {
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
	testimonials, err := s.surveyRepo.ListTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalEvents, err := s.statsRepo.CountEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	return &domain.HomeStats{
		Upcoming:     upcoming,
		Testimonials: testimonials,
		TotalUsers:   users,
		TotalEvents:  totalEvents,
	}, nil
}

func (s *statsService) Export(ctx context.Context, actor *domain.Actor, eventID string) (*domain.ExportedReport, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if eventID == "" && actor.User.Role != domain.RoleAdmin {
		// Helpers export only the event they are scoped to.
		return nil, domain.ErrForbidden
	}
	if eventID == "" {
		stats, err := s.globalStats(ctx)
		if err != nil {
			return nil, err
		}
		scores, err := s.statsRepo.ScoreDistribution(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load score distribution: %w", err)
		}
		return s.exporter.GlobalReport(stats, scores)
	}

	eventID, err := s.scopeEventID(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	stats, err := s.eventStats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.rosterRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	campuses, err := s.statsRepo.TopCampuses(ctx, eventID, topCategoriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load campuses: %w", err)
	}
	programs, err := s.statsRepo.TopPrograms(ctx, eventID, topCategoriesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load programs: %w", err)
	}
	return s.exporter.EventReport(stats, attendees, campuses, programs)
}
