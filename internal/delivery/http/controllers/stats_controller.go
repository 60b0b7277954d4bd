package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatsController handles statistics, home and export endpoints.
type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
}

// NewStatsController creates a StatsController with the given logger and service.
func NewStatsController(logger *slog.Logger, svc domain.StatsService) *StatsController {
	return &StatsController{Logger: logger, Service: svc}
}

// EventStats godoc
// @Summary Event statistics (staff)
// @Description Interest, attendance, satisfaction and affiliation breakdown for one event. Helpers with no event selected fall back to the next upcoming one.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event statistics"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /stats/events/{eventID} [get]
func (c *StatsController) EventStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.EventStats(r.Context(), actor, r.PathValue("eventID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// NextEventStats godoc
// @Summary Statistics for the next upcoming event (staff)
// @Description The helper dashboard view: statistics scoped to the earliest upcoming event.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event statistics"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no upcoming event)"
// @Router /stats/events/next [get]
func (c *StatsController) NextEventStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.EventStats(r.Context(), actor, "")
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// GlobalStats godoc
// @Summary Deployment-wide statistics (admin)
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the global statistics"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /stats/global [get]
func (c *StatsController) GlobalStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.GlobalStats(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Home godoc
// @Summary Public landing payload
// @Description Upcoming events, featured testimonials and headline counts. No authentication required.
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the landing payload"
// @Router /public/home [get]
func (c *StatsController) Home(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Home(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Export godoc
// @Summary Download a statistics workbook (staff)
// @Description Streams an xlsx report. With event_id set the workbook covers that event; without it the global report is rendered, which is admin only.
// @Tags stats
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param event_id query string false "Event ID; empty for the global report"
// @Success 200 {file} binary "the workbook"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /stats/export [get]
func (c *StatsController) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	report, err := c.Service.Export(r.Context(), actor, r.URL.Query().Get("event_id"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		c.Logger.ErrorContext(r.Context(), "failed to stream report", "error", err)
	}
}
