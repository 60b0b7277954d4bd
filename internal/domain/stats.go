package domain

import "context"

// CategoryCount is one row of a grouped count (affiliations, campuses,
// programs, score distribution).
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EventAttendance pairs an event with its attendee count.
type EventAttendance struct {
	Event     *Event `json:"event"`
	Attendees int    `json:"attendees"`
}

// EventStats aggregates one event. AverageScore is nil while the event has no
// survey responses ("not applicable", never a division by zero).
type EventStats struct {
	Event             *Event          `json:"event"`
	Interested        int             `json:"interested"`
	Attendees         int             `json:"attendees"`
	AverageScore      *float64        `json:"average_score"`
	ScoreDistribution []CategoryCount `json:"score_distribution"`
	TopAffiliations   []CategoryCount `json:"top_affiliations"`
}

// GlobalStats aggregates the whole deployment. Admin only.
type GlobalStats struct {
	TotalUsers       int               `json:"total_users"`
	TotalEvents      int               `json:"total_events"`
	TotalAttendances int               `json:"total_attendances"`
	AverageScore     *float64          `json:"average_score"`
	RecentAttendance []EventAttendance `json:"recent_attendance"`
	TopAffiliations  []CategoryCount   `json:"top_affiliations"`
	UsersByRole      []CategoryCount   `json:"users_by_role"`
}

// HomeStats is the unauthenticated landing payload.
type HomeStats struct {
	Upcoming     []*UpcomingEvent  `json:"upcoming"`
	Testimonials []*SurveyResponse `json:"testimonials"`
	TotalUsers   int               `json:"total_users"`
	TotalEvents  int               `json:"total_events"`
}

// StatsRepository defines read-side aggregation queries.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountEvents(ctx context.Context) (int, error)
	SumAttendances(ctx context.Context) (int, error)
	CountInterested(ctx context.Context, eventID string) (int, error)
	CountAttendees(ctx context.Context, eventID string) (int, error)
	// AverageScore returns (nil, nil) when there are no responses. An empty
	// eventID averages over every survey.
	AverageScore(ctx context.Context, eventID string) (*float64, error)
	ScoreDistribution(ctx context.Context, eventID string) ([]CategoryCount, error)
	// TopAffiliations groups attendees of the event (or, with empty eventID,
	// all users) by resolved affiliation, descending, at most limit rows.
	TopAffiliations(ctx context.Context, eventID string, limit int) ([]CategoryCount, error)
	TopCampuses(ctx context.Context, eventID string, limit int) ([]CategoryCount, error)
	TopPrograms(ctx context.Context, eventID string, limit int) ([]CategoryCount, error)
	CountByRole(ctx context.Context) ([]CategoryCount, error)
	// RecentAttendance returns the latest events with their attendee counts
	// in chronological order.
	RecentAttendance(ctx context.Context, limit int) ([]EventAttendance, error)
}

// ExportedReport is a rendered spreadsheet ready for download.
type ExportedReport struct {
	Filename string
	Content  []byte
}

// ReportExporter renders statistics into a downloadable workbook.
type ReportExporter interface {
	EventReport(stats *EventStats, attendees []*User, campuses, programs []CategoryCount) (*ExportedReport, error)
	GlobalReport(stats *GlobalStats, scores []CategoryCount) (*ExportedReport, error)
}

// StatsService defines reporting business logic. Helpers are restricted to
// single-event scope; global aggregates are admin only.
type StatsService interface {
	// EventStats with an empty eventID auto-selects the earliest upcoming
	// event for helper actors; admins get ErrInvalidInput instead.
	EventStats(ctx context.Context, actor *Actor, eventID string) (*EventStats, error)
	GlobalStats(ctx context.Context, actor *Actor) (*GlobalStats, error)
	Home(ctx context.Context) (*HomeStats, error)
	// Export renders the event workbook, or the global workbook when eventID
	// is empty (admin only).
	Export(ctx context.Context, actor *Actor, eventID string) (*ExportedReport, error)
}
