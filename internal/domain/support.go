package domain

import (
	"context"
	"time"
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

// SupportTicket is a user-filed support request.
// swagger:model SupportTicket
type SupportTicket struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TicketReply is one message in a ticket's append-only thread, authored by
// the owner or by staff.
// swagger:model TicketReply
type TicketReply struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketThread bundles a ticket with its replies in creation order.
type TicketThread struct {
	Ticket  *SupportTicket `json:"ticket"`
	Replies []*TicketReply `json:"replies"`
}

// SupportRepository defines the interface for ticket storage.
type SupportRepository interface {
	CreateTicket(ctx context.Context, ticket *SupportTicket) error
	GetTicket(ctx context.Context, id string) (*SupportTicket, error)
	ListByUserID(ctx context.Context, userID string) ([]*SupportTicket, error)
	ListAll(ctx context.Context) ([]*SupportTicket, error)
	UpdateStatus(ctx context.Context, ticketID string, status TicketStatus) error
	CreateReply(ctx context.Context, reply *TicketReply) error
	// ListReplies returns the thread ordered by creation time ascending.
	ListReplies(ctx context.Context, ticketID string) ([]*TicketReply, error)
}

// SupportService defines ticket business logic.
type SupportService interface {
	Create(ctx context.Context, actor *Actor, subject, body string) (*SupportTicket, error)
	ListMine(ctx context.Context, actor *Actor) ([]*SupportTicket, error)
	ListAll(ctx context.Context, actor *Actor) ([]*SupportTicket, error)
	// Get is allowed for the owner and for staff.
	Get(ctx context.Context, actor *Actor, ticketID string) (*TicketThread, error)
	Reply(ctx context.Context, actor *Actor, ticketID, body, imagePath string) (*TicketReply, error)
	UpdateStatus(ctx context.Context, actor *Actor, ticketID string, status TicketStatus) error
}
