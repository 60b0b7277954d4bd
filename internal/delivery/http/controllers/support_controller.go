package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// CreateTicketRequest is the request body for POST /tickets
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate implements Validator.
func (t CreateTicketRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(t.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// ReplyRequest is the request body for POST /tickets/{ticketID}/replies
type ReplyRequest struct {
	Body      string `json:"body"`
	ImagePath string `json:"image_path"`
}

// Validate implements Validator.
func (t ReplyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// TicketStatusRequest is the request body for PATCH /tickets/{ticketID}/status
type TicketStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (t TicketStatusRequest) Validate() []string {
	var errs []string
	if !domain.TicketStatus(t.Status).Valid() {
		errs = append(errs, "status must be open, in_progress or closed")
	}
	return errs
}

// SupportController handles support ticket endpoints.
type SupportController struct {
	Logger  *slog.Logger
	Service domain.SupportService
}

// NewSupportController creates a SupportController with the given logger and service.
func NewSupportController(logger *slog.Logger, svc domain.SupportService) *SupportController {
	return &SupportController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary File a support ticket
// @Tags support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTicketRequest true "Ticket data"
// @Success 201 {object} helpers.APIResponse "data contains the created ticket"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /tickets [post]
func (c *SupportController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req CreateTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ticket, err := c.Service.Create(r.Context(), actor, req.Subject, req.Body)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ticket)
}

// ListMine godoc
// @Summary List the caller's tickets
// @Tags support
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the tickets"
// @Router /tickets/mine [get]
func (c *SupportController) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	tickets, err := c.Service.ListMine(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tickets)
}

// ListAll godoc
// @Summary List every ticket (staff)
// @Tags support
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the tickets"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /tickets [get]
func (c *SupportController) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	tickets, err := c.Service.ListAll(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tickets)
}

// Get godoc
// @Summary Get a ticket's thread
// @Description The ticket plus its replies in creation order. Owner or staff only.
// @Tags support
// @Produce json
// @Security BearerAuth
// @Param ticketID path string true "Ticket ID"
// @Success 200 {object} helpers.APIResponse "data contains {ticket, replies}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{ticketID} [get]
func (c *SupportController) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	thread, err := c.Service.Get(r.Context(), actor, r.PathValue("ticketID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, thread)
}

// Reply godoc
// @Summary Reply on a ticket
// @Tags support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticketID path string true "Ticket ID"
// @Param body body ReplyRequest true "Reply data"
// @Success 201 {object} helpers.APIResponse "data contains the reply"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{ticketID}/replies [post]
func (c *SupportController) Reply(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req ReplyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reply, err := c.Service.Reply(r.Context(), actor, r.PathValue("ticketID"), req.Body, req.ImagePath)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reply)
}

// UpdateStatus godoc
// @Summary Change a ticket's status (staff)
// @Tags support
// @Accept json
// @Security BearerAuth
// @Param ticketID path string true "Ticket ID"
// @Param body body TicketStatusRequest true "New status"
// @Success 204 "status updated"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{ticketID}/status [patch]
func (c *SupportController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req TicketStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateStatus(r.Context(), actor, r.PathValue("ticketID"), domain.TicketStatus(req.Status)); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
