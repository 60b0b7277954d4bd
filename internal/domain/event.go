package domain

import (
	"context"
	"time"
)

// Event represents a scheduled community meeting.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	Location    string    `json:"location"`
	ImagePath   string    `json:"image_path,omitempty"`
	// PrintOnAttend makes check-ins return a label-print follow-up reference.
	PrintOnAttend bool      `json:"print_on_attend"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(title, description, location string, startsAt time.Time, printOnAttend bool, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:         title,
		Description:   description,
		StartsAt:      startsAt,
		Location:      location,
		PrintOnAttend: printOnAttend,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// UpcomingEvent is an event enriched with the days remaining until it starts.
type UpcomingEvent struct {
	Event         *Event `json:"event"`
	DaysRemaining int    `json:"days_remaining"`
}

// EventWithInterested bundles an event with its interested roster.
type EventWithInterested struct {
	Event      *Event               `json:"event"`
	Interested []*PublicProfileView `json:"interested"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Event, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*Event, error)
	// ListWithAttendees returns events that have at least one attendee,
	// newest first. Used as the draw-pool source list.
	ListWithAttendees(ctx context.Context) ([]*Event, error)
	// EarliestUpcomingID returns the id of the next event starting at or
	// after from, or ErrNotFound when none exists.
	EarliestUpcomingID(ctx context.Context, from time.Time) (string, error)
}

// EventService defines event management business logic.
type EventService interface {
	Create(ctx context.Context, actor *Actor, event *Event) error
	Update(ctx context.Context, actor *Actor, event *Event) error
	Delete(ctx context.Context, actor *Actor, eventID string) error
	Get(ctx context.Context, actor *Actor, eventID string) (*Event, error)
	List(ctx context.Context, actor *Actor) ([]*Event, error)
	// Upcoming is public: it backs the home page listing.
	Upcoming(ctx context.Context) ([]*UpcomingEvent, error)
	ListWithInterested(ctx context.Context, actor *Actor) ([]*EventWithInterested, error)
}
