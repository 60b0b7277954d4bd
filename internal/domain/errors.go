package domain

import "errors"

// Sentinel errors shared across services. Repositories translate storage
// errors into these; controllers map them onto HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateRUT   = errors.New("rut already in use")

	// ErrAlreadyAttending is returned when a check-in targets a (user, event)
	// pair that is already on the attendee roster. Duplicate scans must never
	// double-count.
	ErrAlreadyAttending = errors.New("user already registered as attendee")

	// ErrAttendanceConfirmed rejects interest toggles for events the caller
	// already attends. Attendance supersedes interest.
	ErrAttendanceConfirmed = errors.New("attendance already confirmed")

	ErrAlreadyResponded = errors.New("survey already answered")
	ErrSurveyInactive   = errors.New("survey is not active")
	ErrDidNotAttend     = errors.New("user did not attend this event")
)
