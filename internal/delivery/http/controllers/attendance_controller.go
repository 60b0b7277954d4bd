package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// CheckInRequest is the request body for the manual-add and QR check-in
// endpoints. For QR check-ins the user id comes straight from the scanned
// badge URL.
type CheckInRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (c CheckInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.UserID) == "" {
		errs = append(errs, "user_id is required")
	}
	return errs
}

// AttendanceController handles roster and check-in endpoints.
type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

// NewAttendanceController creates an AttendanceController with the given
// logger and service.
func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{Logger: logger, Service: svc}
}

// manualAddResponse reports a manual roster addition. Added is false when the
// user was already attending; the result then describes the existing state.
type manualAddResponse struct {
	Added  bool                  `json:"added"`
	Result *domain.CheckInResult `json:"result"`
}

// ManualAdd godoc
// @Summary Add an attendee manually (staff)
// @Description Registers attendance on behalf of a user. Adding someone already on the roster is not an error: added comes back false and nothing changes.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CheckInRequest true "User to add"
// @Success 200 {object} helpers.APIResponse "data contains {added, result}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendees [post]
func (c *AttendanceController) ManualAdd(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, added, err := c.Service.ManualAdd(r.Context(), actor, r.PathValue("eventID"), req.UserID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, manualAddResponse{Added: added, Result: result})
}

// CheckInQR godoc
// @Summary Check in a scanned badge
// @Description Registers attendance from a QR scan at the kiosk or a staff scanner. A duplicate scan returns 409 and does not change any counter.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CheckInRequest true "Scanned user"
// @Success 201 {object} helpers.APIResponse "data contains the check-in result"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already attending)"
// @Router /events/{eventID}/checkin [post]
func (c *AttendanceController) CheckInQR(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.CheckInQR(r.Context(), actor, r.PathValue("eventID"), req.UserID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// Remove godoc
// @Summary Remove an attendee (staff)
// @Description Takes a user off the roster and decrements their attendance counter. Removing someone who is not on the roster is a no-op.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains {removed: bool}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/{eventID}/attendees/{userID} [delete]
func (c *AttendanceController) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	removed, err := c.Service.Remove(r.Context(), actor, r.PathValue("eventID"), r.PathValue("userID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"removed": removed})
}

// ToggleInterest godoc
// @Summary Toggle interest in an event
// @Description Flips the caller's membership in the interested roster. Rejected once the caller's attendance is confirmed.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {interest: added|removed}"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (attendance already confirmed)"
// @Router /events/{eventID}/interest [post]
func (c *AttendanceController) ToggleInterest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	toggle, err := c.Service.ToggleInterest(r.Context(), actor, r.PathValue("eventID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]domain.InterestToggle{"interest": toggle})
}

// ListAttendees godoc
// @Summary List an event's attendees (staff)
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the attendees"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/{eventID}/attendees [get]
func (c *AttendanceController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	users, err := c.Service.ListAttendees(r.Context(), actor, r.PathValue("eventID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}
