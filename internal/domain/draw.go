package domain

import (
	"context"
	"time"
)

// PoolAll selects every member-role user as the draw pool.
const PoolAll = "todos"

// DrawRecord is one prize-draw outcome. History is append-only; the pool
// description is resolved at write time so later roster or event changes do
// not retroactively alter it.
// swagger:model DrawRecord
type DrawRecord struct {
	ID       string `json:"id"`
	WinnerID string `json:"winner_id"`
	// PoolDescription is the human-readable description of the participant
	// group the winner was drawn from.
	PoolDescription string    `json:"pool_description"`
	DrawnAt         time.Time `json:"drawn_at"`
}

// DrawParticipant is one eligible entry of the draw pool, shaped for the
// client-side roulette wheel.
type DrawParticipant struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	ShortName   string `json:"short_name"`
	Affiliation string `json:"affiliation,omitempty"`
	PhotoPath   string `json:"photo_path,omitempty"`
}

// DrawRepository defines the interface for draw history storage.
type DrawRepository interface {
	Create(ctx context.Context, record *DrawRecord) error
	ListRecent(ctx context.Context, limit int) ([]*DrawRecord, error)
	DeleteAll(ctx context.Context) error
	// ListMemberPool returns every user with no privileged role.
	ListMemberPool(ctx context.Context) ([]*User, error)
}

// DrawService defines prize-draw business logic. The random pick itself is
// client-side; this service serves pools and records outcomes.
type DrawService interface {
	// PoolEvents lists the events offered as pool choices: those with at
	// least one attendee.
	PoolEvents(ctx context.Context, actor *Actor) ([]*Event, error)
	// Participants resolves a pool descriptor: PoolAll or an event id.
	Participants(ctx context.Context, actor *Actor, poolID string) ([]*DrawParticipant, error)
	RecordWinner(ctx context.Context, actor *Actor, winnerID, poolID string) (*DrawRecord, error)
	RecentWinners(ctx context.Context, actor *Actor) ([]*DrawRecord, error)
	ClearHistory(ctx context.Context, actor *Actor) error
}
