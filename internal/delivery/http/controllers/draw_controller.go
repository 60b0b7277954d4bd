package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// RecordWinnerRequest is the request body for POST /draws/winners
type RecordWinnerRequest struct {
	WinnerID string `json:"winner_id"`
	// PoolID is "todos" or an event id; it is resolved into a description at
	// record time.
	PoolID string `json:"pool_id"`
}

// Validate implements Validator.
func (d RecordWinnerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.WinnerID) == "" {
		errs = append(errs, "winner_id is required")
	}
	return errs
}

// DrawController handles prize-draw endpoints.
type DrawController struct {
	Logger  *slog.Logger
	Service domain.DrawService
}

// NewDrawController creates a DrawController with the given logger and service.
func NewDrawController(logger *slog.Logger, svc domain.DrawService) *DrawController {
	return &DrawController{Logger: logger, Service: svc}
}

// PoolEvents godoc
// @Summary List pool event choices (staff)
// @Description Events with at least one attendee, offered as draw pools alongside the all-members pool.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /draws/events [get]
func (c *DrawController) PoolEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	events, err := c.Service.PoolEvents(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Participants godoc
// @Summary Resolve a draw pool (staff)
// @Description Returns the eligible entries for the roulette wheel. pool is "todos" for every member or an event id for that event's attendees.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param pool query string true "Pool descriptor: todos or an event id"
// @Success 200 {object} helpers.APIResponse "data contains the participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event)"
// @Router /draws/participants [get]
func (c *DrawController) Participants(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	participants, err := c.Service.Participants(r.Context(), actor, r.URL.Query().Get("pool"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// RecordWinner godoc
// @Summary Record a draw outcome (admin)
// @Description Appends a winner to the draw history with the pool description resolved at write time.
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordWinnerRequest true "Winner and pool"
// @Success 201 {object} helpers.APIResponse "data contains the recorded draw"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown winner)"
// @Router /draws/winners [post]
func (c *DrawController) RecordWinner(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req RecordWinnerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	record, err := c.Service.RecordWinner(r.Context(), actor, req.WinnerID, req.PoolID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, record)
}

// RecentWinners godoc
// @Summary List recent draw winners (staff)
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the recent winners"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /draws/winners [get]
func (c *DrawController) RecentWinners(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	winners, err := c.Service.RecentWinners(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, winners)
}

// ClearHistory godoc
// @Summary Clear the draw history (admin)
// @Tags draws
// @Security BearerAuth
// @Success 204 "history cleared"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /draws/winners [delete]
func (c *DrawController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := c.Service.ClearHistory(r.Context(), actor); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
