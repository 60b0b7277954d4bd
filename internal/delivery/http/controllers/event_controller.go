package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// EventRequest is the request body for POST /events and PATCH /events/{eventID}
type EventRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartsAt      time.Time `json:"starts_at"`
	Location      string    `json:"location"`
	ImagePath     string    `json:"image_path"`
	PrintOnAttend bool      `json:"print_on_attend"`
}

// Validate implements Validator.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	return errs
}

// EventController handles event CRUD and listing endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Create an event (admin)
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent("")
	if err := c.Service.Create(r.Context(), actor, event); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event (admin)
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent(r.PathValue("eventID"))
	if err := c.Service.Update(r.Context(), actor, event); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

func (e EventRequest) toEvent(id string) *domain.Event {
	return &domain.Event{
		ID:            id,
		Title:         e.Title,
		Description:   e.Description,
		StartsAt:      e.StartsAt,
		Location:      e.Location,
		ImagePath:     e.ImagePath,
		PrintOnAttend: e.PrintOnAttend,
	}
}

// Delete godoc
// @Summary Delete an event (admin)
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "event deleted"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), actor, r.PathValue("eventID")); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get godoc
// @Summary Get an event by id
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Get(r.Context(), actor, r.PathValue("eventID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// List godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	events, err := c.Service.List(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Upcoming godoc
// @Summary List upcoming events
// @Description Public listing for the landing page, each event carrying the days remaining until it starts.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the upcoming events"
// @Router /public/events [get]
func (c *EventController) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.Upcoming(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListWithInterested godoc
// @Summary List events with their interested rosters (admin)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains events with interested users"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/interested [get]
func (c *EventController) ListWithInterested(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListWithInterested(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
