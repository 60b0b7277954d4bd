package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/delivery/http/middleware"
	"github.com/Litjoaco/inacap/internal/domain"
)

// respondError maps domain sentinel errors onto the HTTP error envelope.
// Anything unmapped is logged and reported as a 500.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyAttending):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "attendance already registered")
	case errors.Is(err, domain.ErrAttendanceConfirmed):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "attendance already confirmed")
	case errors.Is(err, domain.ErrAlreadyResponded):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "survey already answered")
	case errors.Is(err, domain.ErrSurveyInactive):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "survey is closed")
	case errors.Is(err, domain.ErrDidNotAttend):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only attendees may answer")
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already registered")
	case errors.Is(err, domain.ErrDuplicateRUT):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "rut already registered")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// actorOr401 pulls the acting identity out of the context, answering 401 when
// the middleware did not run.
func actorOr401(w http.ResponseWriter, r *http.Request) (*domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	return actor, true
}
