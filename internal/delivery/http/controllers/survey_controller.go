package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// CreateSurveyRequest is the request body for POST /surveys
type CreateSurveyRequest struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
}

// Validate implements Validator.
func (s CreateSurveyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// RespondRequest is the request body for POST /surveys/{surveyID}/responses
type RespondRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (s RespondRequest) Validate() []string {
	var errs []string
	if s.Score < 1 || s.Score > 5 {
		errs = append(errs, "score must be between 1 and 5")
	}
	return errs
}

// SurveyController handles satisfaction survey endpoints.
type SurveyController struct {
	Logger  *slog.Logger
	Service domain.SurveyService
}

// NewSurveyController creates a SurveyController with the given logger and service.
func NewSurveyController(logger *slog.Logger, svc domain.SurveyService) *SurveyController {
	return &SurveyController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Create a survey for an event (admin)
// @Description An event has at most one survey; a second create returns 409.
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSurveyRequest true "Survey data"
// @Success 201 {object} helpers.APIResponse "data contains the created survey"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event already has a survey)"
// @Router /surveys [post]
func (c *SurveyController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req CreateSurveyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	survey, err := c.Service.Create(r.Context(), actor, req.EventID, req.Title)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, survey)
}

// Delete godoc
// @Summary Delete a survey (admin)
// @Tags surveys
// @Security BearerAuth
// @Param surveyID path string true "Survey ID"
// @Success 204 "survey deleted"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /surveys/{surveyID} [delete]
func (c *SurveyController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), actor, r.PathValue("surveyID")); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List godoc
// @Summary List surveys (admin)
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the surveys"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /surveys [get]
func (c *SurveyController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	surveys, err := c.Service.List(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, surveys)
}

// Responses godoc
// @Summary List a survey's responses with their average (admin)
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param surveyID path string true "Survey ID"
// @Success 200 {object} helpers.APIResponse "data contains {survey, responses, average}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /surveys/{surveyID}/responses [get]
func (c *SurveyController) Responses(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	result, err := c.Service.Responses(r.Context(), actor, r.PathValue("surveyID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Respond godoc
// @Summary Answer a survey
// @Description Records the caller's score and optional comment. Only attendees of the survey's event may answer, only while the survey is active, and only once.
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param surveyID path string true "Survey ID"
// @Param body body RespondRequest true "Answer"
// @Success 201 {object} helpers.APIResponse "data contains the recorded response"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (did not attend)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already answered or survey closed)"
// @Router /surveys/{surveyID}/responses [post]
func (c *SurveyController) Respond(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	resp, err := c.Service.Respond(r.Context(), actor, r.PathValue("surveyID"), req.Score, req.Comment)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, resp)
}

// ToggleResponseFeatured godoc
// @Summary Toggle a response's testimonial flag (admin)
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param responseID path string true "Response ID"
// @Success 200 {object} helpers.APIResponse "data contains {featured: bool}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /survey-responses/{responseID}/featured [post]
func (c *SurveyController) ToggleResponseFeatured(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	featured, err := c.Service.ToggleResponseFeatured(r.Context(), actor, r.PathValue("responseID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"featured": featured})
}

// Pending godoc
// @Summary List the caller's unanswered surveys
// @Description Active surveys for events the caller attended and has not answered yet.
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the pending surveys"
// @Router /surveys/pending [get]
func (c *SurveyController) Pending(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	pending, err := c.Service.PendingForUser(r.Context(), actor)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pending)
}
