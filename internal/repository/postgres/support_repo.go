package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Litjoaco/inacap/internal/domain"
)

type supportRepository struct {
	DB *sql.DB
}

func NewSupportRepository(db *sql.DB) domain.SupportRepository {
	return &supportRepository{DB: db}
}

func (r *supportRepository) CreateTicket(ctx context.Context, t *domain.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (user_id, subject, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		t.UserID, t.Subject, t.Body, string(t.Status), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
}

func (r *supportRepository) GetTicket(ctx context.Context, id string) (*domain.SupportTicket, error) {
	query := `
		SELECT id, user_id, subject, body, status, created_at, updated_at
		FROM support_tickets
		WHERE id = $1
	`
	t := &domain.SupportTicket{}
	var status string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Body, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	t.Status = domain.TicketStatus(status)
	return t, nil
}

func (r *supportRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SupportTicket, error) {
	query := `
		SELECT id, user_id, subject, body, status, created_at, updated_at
		FROM support_tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryTickets(ctx, query, userID)
}

func (r *supportRepository) ListAll(ctx context.Context) ([]*domain.SupportTicket, error) {
	query := `
		SELECT id, user_id, subject, body, status, created_at, updated_at
		FROM support_tickets
		ORDER BY created_at DESC
	`
	return r.queryTickets(ctx, query)
}

func (r *supportRepository) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	query := `UPDATE support_tickets SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, string(status), ticketID)
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

func (r *supportRepository) CreateReply(ctx context.Context, reply *domain.TicketReply) error {
	query := `
		INSERT INTO ticket_replies (ticket_id, user_id, body, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, query,
		reply.TicketID, reply.UserID, reply.Body, reply.ImagePath, reply.CreatedAt,
	).Scan(&reply.ID); err != nil {
		return err
	}
	// A reply bumps the ticket's last-update timestamp.
	_, err := r.DB.ExecContext(ctx, `UPDATE support_tickets SET updated_at = NOW() WHERE id = $1`, reply.TicketID)
	return err
}

func (r *supportRepository) ListReplies(ctx context.Context, ticketID string) ([]*domain.TicketReply, error) {
	query := `
		SELECT id, ticket_id, user_id, body, image_path, created_at
		FROM ticket_replies
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []*domain.TicketReply
	for rows.Next() {
		reply := &domain.TicketReply{}
		if err := rows.Scan(&reply.ID, &reply.TicketID, &reply.UserID, &reply.Body, &reply.ImagePath, &reply.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []*domain.TicketReply{}
	}
	return replies, nil
}

func (r *supportRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*domain.SupportTicket, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.SupportTicket
	for rows.Next() {
		t := &domain.SupportTicket{}
		var status string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Body, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = domain.TicketStatus(status)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*domain.SupportTicket{}
	}
	return tickets, nil
}
