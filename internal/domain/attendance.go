package domain

import "context"

// RosterRepository stores the attendee and interested many-to-many relations
// between users and events. AddAttendee and AddInterest must be atomic
// conditional inserts: the boolean result is true only for the one call that
// actually inserted the row, so concurrent duplicate check-ins resolve to a
// single success.
type RosterRepository interface {
	AddAttendee(ctx context.Context, eventID, userID string) (added bool, err error)
	RemoveAttendee(ctx context.Context, eventID, userID string) (removed bool, err error)
	IsAttendee(ctx context.Context, eventID, userID string) (bool, error)
	ListAttendees(ctx context.Context, eventID string) ([]*User, error)

	AddInterest(ctx context.Context, eventID, userID string) (added bool, err error)
	RemoveInterest(ctx context.Context, eventID, userID string) (removed bool, err error)
	ListInterested(ctx context.Context, eventID string) ([]*User, error)

	// ListAttendedEventIDs returns ids of events the user attends.
	ListAttendedEventIDs(ctx context.Context, userID string) ([]string, error)
}

// CheckInResult reports a successful attendance registration.
// swagger:model CheckInResult
type CheckInResult struct {
	Attendee *PublicProfileView `json:"attendee"`
	// AttendanceCount is the committed value of the attendee's counter after
	// the check-in.
	AttendanceCount int `json:"attendance_count"`
	// PrintUserID is a follow-up reference: when non-empty the caller should
	// route to the label-print view for this user. How the follow-up is
	// realized (redirect, UI event) is the caller's decision.
	PrintUserID string `json:"print_user_id,omitempty"`
}

// InterestToggle tells which transition a toggle call performed.
type InterestToggle string

const (
	InterestAdded   InterestToggle = "added"
	InterestRemoved InterestToggle = "removed"
)

// AttendanceService is the check-in state machine. Per (user, event) the only
// states are not-attending and attending; attending is left only through an
// explicit staff removal.
type AttendanceService interface {
	// ManualAdd registers attendance on behalf of a user. added is false when
	// the user was already on the roster (no mutation happens).
	ManualAdd(ctx context.Context, actor *Actor, eventID, userID string) (result *CheckInResult, added bool, err error)
	// CheckInQR registers attendance from a scanned badge. A duplicate scan
	// returns ErrAlreadyAttending and performs no mutation.
	CheckInQR(ctx context.Context, actor *Actor, eventID, userID string) (*CheckInResult, error)
	// Remove takes a user off the roster and decrements their counter,
	// clamped at zero. Removing an absent user is a no-op (removed=false).
	Remove(ctx context.Context, actor *Actor, eventID, userID string) (removed bool, err error)
	// ToggleInterest flips the caller's membership in the interested roster.
	// Rejected with ErrAttendanceConfirmed when the caller already attends.
	ToggleInterest(ctx context.Context, actor *Actor, eventID string) (InterestToggle, error)
	ListAttendees(ctx context.Context, actor *Actor, eventID string) ([]*User, error)
}
