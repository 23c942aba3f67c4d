// Package api contains the HTTP handlers, request/response models and the
// error-to-status mapping for the user endpoints.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fvidalmarques/userhub-api/internal/api/shared"
	"github.com/fvidalmarques/userhub-api/internal/service"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
)

// Default pagination window applied when the client sends no query
// parameters.
const (
	defaultListLimit  = 10
	defaultListOffset = 0
)

// LoginResponse is the body returned on successful authentication. Unlike
// the other endpoints it carries the user and token at the top level.
type LoginResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	User    service.UserResponse `json:"user"`
	Token   string               `json:"token"`
}

// UserHandler handles the HTTP surface of the user service.
type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with its dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      logger.With("component", "user_handler"),
	}
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate(h.validator, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusCreated, "User registered successfully", user)
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate(h.validator, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.userService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    session.User,
		Token:   session.Token,
	})
}

// GetByID handles GET /auth/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, user)
}

// List handles GET /auth with limit and skip query parameters.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := parseQueryInt(r, "limit", defaultListLimit)
	if err != nil || limit <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	offset, err := parseQueryInt(r, "skip", defaultListOffset)
	if err != nil || offset < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}

	users, err := h.userService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, users)
}

// Update handles PUT /auth/{id}, replacing every mutable field.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate(h.validator, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "User updated successfully", user)
}

// Patch handles PATCH /auth/{id}, applying only the supplied fields.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req PatchUserRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields provided to update")
		return
	}
	if err := shared.Validate(h.validator, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.PatchUser(r.Context(), id, service.PatchUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "User updated successfully", user)
}

// Delete handles DELETE /auth/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me, returning the account behind the presented token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or missing authentication")
		return
	}

	user, err := h.userService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		status, msg := RespondWithMappedError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, user)
}

// parseID extracts and validates the {id} path parameter, writing the error
// response itself when the value is not a positive integer.
func (h *UserHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Debug("rejected malformed user id", "raw_id", raw)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}

func parseQueryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " is not an integer")
	}
	return value, nil
}
