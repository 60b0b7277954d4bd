package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

type supportService struct {
	supportRepo domain.SupportRepository
}

// NewSupportService creates a SupportService with the given repository.
func NewSupportService(supportRepo domain.SupportRepository) domain.SupportService {
	return &supportService{supportRepo: supportRepo}
}

func (s *supportService) Create(ctx context.Context, actor *domain.Actor, subject, body string) (*domain.SupportTicket, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: subject and body are required", domain.ErrInvalidInput)
	}
	now := time.Now()
	ticket := &domain.SupportTicket{
		UserID:    actor.User.ID,
		Subject:   subject,
		Body:      body,
		Status:    domain.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.supportRepo.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return ticket, nil
}

func (s *supportService) ListMine(ctx context.Context, actor *domain.Actor) ([]*domain.SupportTicket, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.supportRepo.ListByUserID(ctx, actor.User.ID)
}

func (s *supportService) ListAll(ctx context.Context, actor *domain.Actor) ([]*domain.SupportTicket, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.supportRepo.ListAll(ctx)
}

func (s *supportService) Get(ctx context.Context, actor *domain.Actor, ticketID string) (*domain.TicketThread, error) {
	ticket, err := s.authorizedTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	replies, err := s.supportRepo.ListReplies(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return &domain.TicketThread{Ticket: ticket, Replies: replies}, nil
}

func (s *supportService) Reply(ctx context.Context, actor *domain.Actor, ticketID, body, imagePath string) (*domain.TicketReply, error) {
	if _, err := s.authorizedTicket(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" && imagePath == "" {
		return nil, fmt.Errorf("%w: reply body is required", domain.ErrInvalidInput)
	}
	reply := &domain.TicketReply{
		TicketID:  ticketID,
		UserID:    actor.User.ID,
		Body:      body,
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}
	if err := s.supportRepo.CreateReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

func (s *supportService) UpdateStatus(ctx context.Context, actor *domain.Actor, ticketID string, status domain.TicketStatus) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.supportRepo.UpdateStatus(ctx, ticketID, status)
}

// authorizedTicket loads the ticket and enforces owner-or-staff access.
func (s *supportService) authorizedTicket(ctx context.Context, actor *domain.Actor, ticketID string) (*domain.SupportTicket, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	ticket, err := s.supportRepo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket.UserID != actor.User.ID && !actor.User.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}
