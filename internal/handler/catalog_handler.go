package handler

import (
	"net/http"
	"strconv"

	"nutellove/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler serves categories and brands.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Categories handles GET /api/categories requests.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// Category handles GET /api/categories/{id} requests.
func (h *CatalogHandler) Category(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.numericID(w, r, "/api/categories/", "category")
	if !ok {
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	listing, err := h.service.CategoryProducts(r.Context(), id, limit, offset, currentUser(r))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve category products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// Brands handles GET /api/brands requests.
func (h *CatalogHandler) Brands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	brands, err := h.service.Brands(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve brands", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, brands)
}

// Brand handles GET /api/brands/{id} requests.
func (h *CatalogHandler) Brand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.numericID(w, r, "/api/brands/", "brand")
	if !ok {
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	listing, err := h.service.BrandProducts(r.Context(), id, limit, offset, currentUser(r))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve brand products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (h *CatalogHandler) numericID(w http.ResponseWriter, r *http.Request, prefix, name string) (int64, bool) {
	raw := pathID(r, prefix)
	if raw == "" {
		writeError(w, http.StatusBadRequest, name+" ID is required", h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" ID format", h.logger)
		return 0, false
	}

	return id, true
}
