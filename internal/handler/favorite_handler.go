package handler

import (
	"net/http"

	"nutellove/internal/model"
	"nutellove/internal/service"

	"github.com/rs/zerolog"
)

// FavoriteHandler handles the saved substitutes of the signed-in user.
type FavoriteHandler struct {
	service service.FavoriteService
	logger  zerolog.Logger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(service service.FavoriteService, logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		logger:  logger.With().Str("handler", "favorite").Logger(),
	}
}

// List handles GET /api/favorites requests.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	user := currentUser(r)
	if user == nil {
		writeServiceError(w, model.ErrUnauthorised, "authentication required", h.logger)
		return
	}

	favorites, err := h.service.List(r.Context(), *user)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve favorites", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}

// Toggle handles POST /api/favorites/{productId} requests.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	user := currentUser(r)
	if user == nil {
		writeServiceError(w, model.ErrUnauthorised, "authentication required", h.logger)
		return
	}

	productID := pathID(r, "/api/favorites/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	resp, err := h.service.Toggle(r.Context(), *user, productID)
	if err != nil {
		writeServiceError(w, err, "failed to toggle favorite", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
