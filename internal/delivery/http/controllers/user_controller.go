package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Litjoaco/inacap/internal/delivery/http/helpers"
	"github.com/Litjoaco/inacap/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register
type RegisterRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	RUT         string `json:"rut"`
	Email       string `json:"email"`
	Origin      string `json:"origin"` // "inacap" or "externo"
	Affiliation string `json:"affiliation"`
	Institution string `json:"institution"`
}

// Validate implements Validator.
func (s RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if strings.TrimSpace(s.RUT) == "" {
		errs = append(errs, "rut is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Origin != "inacap" && s.Origin != "externo" {
		errs = append(errs, "origin must be \"inacap\" or \"externo\"")
	}
	return errs
}

// UpdateProfileRequest is the request body for PATCH /users/me and, with the
// extra admin-only fields, PATCH /users/{userID}.
type UpdateProfileRequest struct {
	Name             string `json:"name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	Affiliation      string `json:"affiliation"`
	AffiliationOther string `json:"affiliation_other"`
	Campus           string `json:"campus"`
	CampusOther      string `json:"campus_other"`
	Program          string `json:"program"`
	ProgramOther     string `json:"program_other"`
	Institution      string `json:"institution"`
	PhotoPath        string `json:"photo_path"`

	// Admin-only fields, ignored on the self-service endpoint.
	Email string `json:"email,omitempty"`
	RUT   string `json:"rut,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Validate implements Validator.
func (u UpdateProfileRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	return errs
}

// VisibilityRequest is the request body for PUT /users/{userID}/visibility
type VisibilityRequest struct {
	Public bool `json:"public"`
}

// UserController handles registration, profile and directory endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{Logger: logger, Service: svc}
}

// Register godoc
// @Summary Register a new member
// @Description Creates a member account from the public registration form. The rut must carry a valid check digit; the account's initial password is the rut body without it. A QR badge pointing at the public profile is generated on the spot.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate email or rut)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Name:        req.Name,
		LastName:    req.LastName,
		RUT:         req.RUT,
		Email:       req.Email,
		Origin:      req.Origin,
		Affiliation: req.Affiliation,
		Institution: req.Institution,
	})
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// GetMe godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, actor.User)
}

// UpdateMe godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user := req.apply(&domain.User{ID: actor.User.ID})
	if err := c.Service.UpdateProfile(r.Context(), actor, user); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete the caller's account
// @Tags users
// @Security BearerAuth
// @Success 204 "account deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me [delete]
func (c *UserController) DeleteMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteSelf(r.Context(), actor); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUser godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), actor, r.PathValue("userID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user (staff)
// @Description Staff profile editing. Role changes are accepted from admins only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [patch]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID := r.PathValue("userID")
	existing, err := c.Service.GetByID(r.Context(), actor, userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	user := req.apply(&domain.User{ID: userID, Role: existing.Role, RUT: existing.RUT, Email: existing.Email})
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}
	if req.RUT != "" {
		user.RUT = req.RUT
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := c.Service.AdminUpdate(r.Context(), actor, user); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

func (u UpdateProfileRequest) apply(user *domain.User) *domain.User {
	user.Name = u.Name
	user.LastName = u.LastName
	user.Phone = u.Phone
	user.Affiliation = u.Affiliation
	user.AffiliationOther = u.AffiliationOther
	user.Campus = u.Campus
	user.CampusOther = u.CampusOther
	user.Program = u.Program
	user.ProgramOther = u.ProgramOther
	user.Institution = u.Institution
	user.PhotoPath = u.PhotoPath
	return user
}

// DeleteUser godoc
// @Summary Delete a user (admin)
// @Tags users
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 204 "user deleted"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [delete]
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), actor, r.PathValue("userID")); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetVisibility godoc
// @Summary Publish or hide a profile
// @Description Owners control their own visibility. Admins may hide a profile but not publish one.
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body VisibilityRequest true "Desired visibility"
// @Success 204 "visibility updated"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users/{userID}/visibility [put]
func (c *UserController) SetVisibility(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req VisibilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetVisibility(r.Context(), actor, r.PathValue("userID"), req.Public); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFeatured godoc
// @Summary Toggle a profile's featured flag (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains {featured: bool}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users/{userID}/featured [post]
func (c *UserController) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	featured, err := c.Service.ToggleFeatured(r.Context(), actor, r.PathValue("userID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"featured": featured})
}

// Directory godoc
// @Summary Browse the member directory
// @Description Lists public profiles, optionally filtered by free-text query, affiliation, campus or program.
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text search over name, last name, email and rut"
// @Param affiliation query string false "Affiliation code"
// @Param campus query string false "Campus code"
// @Param program query string false "Program code"
// @Success 200 {object} helpers.APIResponse "data contains the profile cards"
// @Router /directory [get]
func (c *UserController) Directory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	views, err := c.Service.Directory(r.Context(), actor, directoryFilter(r))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// SearchUsers godoc
// @Summary Search full user records (staff)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text search over name, last name, email and rut"
// @Success 200 {object} helpers.APIResponse "data contains the users"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users [get]
func (c *UserController) SearchUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	users, err := c.Service.SearchUsers(r.Context(), actor, directoryFilter(r))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// PublicProfile godoc
// @Summary Public profile card
// @Description The target of the printed QR badge. No authentication required.
// @Tags directory
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains the profile card"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/users/{userID} [get]
func (c *UserController) PublicProfile(w http.ResponseWriter, r *http.Request) {
	view, err := c.Service.PublicProfile(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

func directoryFilter(r *http.Request) domain.DirectoryFilter {
	q := r.URL.Query()
	return domain.DirectoryFilter{
		Query:       strings.TrimSpace(q.Get("q")),
		Affiliation: strings.TrimSpace(q.Get("affiliation")),
		Campus:      strings.TrimSpace(q.Get("campus")),
		Program:     strings.TrimSpace(q.Get("program")),
	}
}
