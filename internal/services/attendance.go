package services

import (
	"context"
	"fmt"

	"github.com/Litjoaco/inacap/internal/domain"
	"github.com/Litjoaco/inacap/internal/metrics"
)

type attendanceService struct {
	rosterRepo domain.RosterRepository
	userRepo   domain.UserRepository
	eventRepo  domain.EventRepository
}

// NewAttendanceService creates an AttendanceService with the given repositories.
func NewAttendanceService(rosterRepo domain.RosterRepository, userRepo domain.UserRepository, eventRepo domain.EventRepository) domain.AttendanceService {
	return &attendanceService{
		rosterRepo: rosterRepo,
		userRepo:   userRepo,
		eventRepo:  eventRepo,
	}
}

func (s *attendanceService) ManualAdd(ctx context.Context, actor *domain.Actor, eventID, userID string) (*domain.CheckInResult, bool, error) {
	if err := requireStaff(actor); err != nil {
		return nil, false, err
	}
	result, added, err := s.checkIn(ctx, eventID, userID)
	if err != nil {
		return nil, false, err
	}
	return result, added, nil
}

func (s *attendanceService) CheckInQR(ctx context.Context, actor *domain.Actor, eventID, userID string) (*domain.CheckInResult, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.User.Role.IsPrivileged() {
		return nil, domain.ErrForbidden
	}
	result, added, err := s.checkIn(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		metrics.DuplicateScans.Inc()
		return nil, domain.ErrAlreadyAttending
	}
	return result, nil
}

// checkIn is the single write path for attendance. The roster insert is the
// atomic decision point: only the call that inserted the row increments the
// counter, so a double scan can never count twice.
func (s *attendanceService) checkIn(ctx context.Context, eventID, userID string) (*domain.CheckInResult, bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get event: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	added, err := s.rosterRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add attendee: %w", err)
	}
	if !added {
		return &domain.CheckInResult{
			Attendee:        user.PublicView(),
			AttendanceCount: user.AttendanceCount,
		}, false, nil
	}

	count, err := s.userRepo.IncrementAttendance(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to increment attendance count: %w", err)
	}
	metrics.CheckIns.Inc()

	result := &domain.CheckInResult{
		Attendee:        user.PublicView(),
		AttendanceCount: count,
	}
	if event.PrintOnAttend {
		result.PrintUserID = userID
	}
	return result, true, nil
}

func (s *attendanceService) Remove(ctx context.Context, actor *domain.Actor, eventID, userID string) (bool, error) {
	if err := requireStaff(actor); err != nil {
		return false, err
	}
	removed, err := s.rosterRepo.RemoveAttendee(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove attendee: %w", err)
	}
	if !removed {
		return false, nil
	}
	if err := s.userRepo.DecrementAttendance(ctx, userID); err != nil {
		return false, fmt.Errorf("failed to decrement attendance count: %w", err)
	}
	return true, nil
}

func (s *attendanceService) ToggleInterest(ctx context.Context, actor *domain.Actor, eventID string) (domain.InterestToggle, error) {
	if actor == nil || actor.User == nil {
		return "", domain.ErrUnauthorized
	}
	// Kiosk terminals scan badges; they have no interests of their own.
	if actor.User.Role == domain.RoleKiosk {
		return "", domain.ErrForbidden
	}
	userID := actor.User.ID

	attending, err := s.rosterRepo.IsAttendee(ctx, eventID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to check attendance: %w", err)
	}
	if attending {
		// Confirmed attendance supersedes interest and is not undone by a
		// second tap.
		return "", domain.ErrAttendanceConfirmed
	}

	added, err := s.rosterRepo.AddInterest(ctx, eventID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to add interest: %w", err)
	}
	if added {
		return domain.InterestAdded, nil
	}
	if _, err := s.rosterRepo.RemoveInterest(ctx, eventID, userID); err != nil {
		return "", fmt.Errorf("failed to remove interest: %w", err)
	}
	return domain.InterestRemoved, nil
}

func (s *attendanceService) ListAttendees(ctx context.Context, actor *domain.Actor, eventID string) ([]*domain.User, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.rosterRepo.ListAttendees(ctx, eventID)
}
