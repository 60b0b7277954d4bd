package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Litjoaco/inacap/internal/delivery/http/controllers"
	"github.com/Litjoaco/inacap/internal/delivery/http/middleware"
)

// Controllers bundles every controller the router serves.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Event      *controllers.EventController
	Attendance *controllers.AttendanceController
	Survey     *controllers.SurveyController
	Support    *controllers.SupportController
	Draw       *controllers.DrawController
	Stats      *controllers.StatsController
}

// NewRouter initializes the HTTP router with all application routes.
// auth composes RequireAuth, so every gated route resolves the actor against
// the session store before the role check runs.
func NewRouter(c Controllers, auth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	admin := func(h http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireAdmin()(h)) }
	staff := func(h http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireStaff()(h)) }
	privileged := func(h http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequirePrivileged()(h)) }
	kiosk := func(h http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireKiosk()(h)) }

	// Public
	mux.HandleFunc("GET /public/home", c.Stats.Home)
	mux.HandleFunc("GET /public/events", c.Event.Upcoming)
	mux.HandleFunc("GET /public/users/{userID}", c.User.PublicProfile)
	mux.HandleFunc("POST /auth/register", c.User.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Auth
	mux.HandleFunc("POST /auth/logout", auth(c.Auth.Logout))
	mux.HandleFunc("POST /auth/password", auth(c.Auth.ChangePassword))
	mux.HandleFunc("POST /kiosk/exit", kiosk(c.Auth.KioskExit))

	// Users and directory
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))
	mux.HandleFunc("DELETE /users/me", auth(c.User.DeleteMe))
	mux.HandleFunc("GET /users", staff(c.User.SearchUsers))
	mux.HandleFunc("GET /users/{userID}", auth(c.User.GetUser))
	mux.HandleFunc("PATCH /users/{userID}", staff(c.User.UpdateUser))
	mux.HandleFunc("DELETE /users/{userID}", admin(c.User.DeleteUser))
	mux.HandleFunc("PUT /users/{userID}/visibility", auth(c.User.SetVisibility))
	mux.HandleFunc("POST /users/{userID}/featured", admin(c.User.ToggleFeatured))
	mux.HandleFunc("GET /directory", auth(c.User.Directory))

	// Events
	mux.HandleFunc("POST /events", admin(c.Event.Create))
	mux.HandleFunc("GET /events", auth(c.Event.List))
	mux.HandleFunc("GET /events/interested", admin(c.Event.ListWithInterested))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.Get))
	mux.HandleFunc("PATCH /events/{eventID}", admin(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", admin(c.Event.Delete))

	// Attendance
	mux.HandleFunc("POST /events/{eventID}/attendees", staff(c.Attendance.ManualAdd))
	mux.HandleFunc("GET /events/{eventID}/attendees", staff(c.Attendance.ListAttendees))
	mux.HandleFunc("DELETE /events/{eventID}/attendees/{userID}", staff(c.Attendance.Remove))
	mux.HandleFunc("POST /events/{eventID}/checkin", privileged(c.Attendance.CheckInQR))
	mux.HandleFunc("POST /events/{eventID}/interest", auth(c.Attendance.ToggleInterest))

	// Surveys
	mux.HandleFunc("POST /surveys", admin(c.Survey.Create))
	mux.HandleFunc("GET /surveys", admin(c.Survey.List))
	mux.HandleFunc("GET /surveys/pending", auth(c.Survey.Pending))
	mux.HandleFunc("DELETE /surveys/{surveyID}", admin(c.Survey.Delete))
	mux.HandleFunc("GET /surveys/{surveyID}/responses", admin(c.Survey.Responses))
	mux.HandleFunc("POST /surveys/{surveyID}/responses", auth(c.Survey.Respond))
	mux.HandleFunc("POST /survey-responses/{responseID}/featured", admin(c.Survey.ToggleResponseFeatured))

	// Support
	mux.HandleFunc("POST /tickets", auth(c.Support.Create))
	mux.HandleFunc("GET /tickets", staff(c.Support.ListAll))
	mux.HandleFunc("GET /tickets/mine", auth(c.Support.ListMine))
	mux.HandleFunc("GET /tickets/{ticketID}", auth(c.Support.Get))
	mux.HandleFunc("POST /tickets/{ticketID}/replies", auth(c.Support.Reply))
	mux.HandleFunc("PATCH /tickets/{ticketID}/status", staff(c.Support.UpdateStatus))

	// Draws
	mux.HandleFunc("GET /draws/events", staff(c.Draw.PoolEvents))
	mux.HandleFunc("GET /draws/participants", staff(c.Draw.Participants))
	mux.HandleFunc("GET /draws/winners", staff(c.Draw.RecentWinners))
	mux.HandleFunc("POST /draws/winners", admin(c.Draw.RecordWinner))
	mux.HandleFunc("DELETE /draws/winners", admin(c.Draw.ClearHistory))

	// Stats and export
	mux.HandleFunc("GET /stats/events/next", staff(c.Stats.NextEventStats))
	mux.HandleFunc("GET /stats/events/{eventID}", staff(c.Stats.EventStats))
	mux.HandleFunc("GET /stats/global", admin(c.Stats.GlobalStats))
	mux.HandleFunc("GET /stats/export", staff(c.Stats.Export))

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
