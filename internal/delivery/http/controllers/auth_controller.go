package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/delivery/http/middleware"
	"github.com/Litjoaco/inacap/internal/domain"
)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// ChangePasswordRequest is the request body for POST /auth/password
type ChangePasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}

// Validate implements Validator.
func (c ChangePasswordRequest) Validate() []string {
	var errs []string
	if c.Current == "" {
		errs = append(errs, "current password is required")
	}
	if c.Next == "" {
		errs = append(errs, "new password is required")
	}
	return errs
}

// KioskExitRequest is the request body for POST /kiosk/exit
type KioskExitRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (k KioskExitRequest) Validate() []string {
	if k.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// AuthController handles credential and session endpoints.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a bearer token backed by a server-side session and the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		User:      result.User,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the session behind the presented token. The token is unusable immediately afterwards.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 204 "session revoked"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	if err := c.Service.Logout(r.Context(), actor, sessionID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Current and new password"
// @Success 204 "password changed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/password [post]
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ChangePassword(r.Context(), actor, req.Current, req.Next); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// KioskExit godoc
// @Summary Unlock the kiosk screen
// @Description Re-authenticates the kiosk account itself to allow leaving the locked-down scanning screen.
// @Tags kiosk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body KioskExitRequest true "Kiosk password"
// @Success 204 "unlocked"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /kiosk/exit [post]
func (c *AuthController) KioskExit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req KioskExitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.VerifyKioskExit(r.Context(), actor, req.Password); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
