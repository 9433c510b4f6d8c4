package handler

import (
	"net/http"

	"nutellove/internal/model"
	"nutellove/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/users/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to register user", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/users/login requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to login", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Account handles GET /api/users/account requests.
func (h *UserHandler) Account(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	user := currentUser(r)
	if user == nil {
		writeServiceError(w, model.ErrUnauthorised, "authentication required", h.logger)
		return
	}

	account, err := h.service.Account(r.Context(), *user)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve account", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// ChangePassword handles POST /api/users/password requests.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	user := currentUser(r)
	if user == nil {
		writeServiceError(w, model.ErrUnauthorised, "authentication required", h.logger)
		return
	}

	var req model.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.ChangePassword(r.Context(), *user, &req)
	if err != nil {
		writeServiceError(w, err, "failed to change password", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
