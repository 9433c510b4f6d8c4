package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nutellove/internal/middleware"
	"nutellove/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps err to a status code. Domain errors are reported
// with their own message; anything else becomes a 500 carrying fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fallback, Code: model.ErrCodeInternalError})
		return
	}

	status := statusFor(domainErr.Code)
	logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// statusFor returns the HTTP status of a domain error code.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidGrade,
		model.ErrCodeInvalidPassword,
		model.ErrCodePasswordMismatch:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound,
		model.ErrCodeCategoryNotFound,
		model.ErrCodeBrandNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeUsernameTaken:
		return http.StatusConflict
	case model.ErrCodeBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// parsePagination reads the limit and offset query parameters.
func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = 10 // default
	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return 0, 0, errors.New("invalid limit parameter")
		}
	}

	if s := r.URL.Query().Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return 0, 0, errors.New("invalid offset parameter")
		}
	}

	return limit, offset, nil
}

// pathID returns the path segment following prefix, without trailing slash.
func pathID(r *http.Request, prefix string) string {
	if !strings.HasPrefix(r.URL.Path, prefix) {
		return ""
	}
	return strings.Trim(r.URL.Path[len(prefix):], "/")
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 8 << 10

// decodeJSON decodes at most maxBodyBytes of the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.NewDomainError(model.ErrCodeBodyTooLarge, "request body is too large")
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// currentUser returns the authenticated user's ID, or nil for anonymous requests.
func currentUser(r *http.Request) *uuid.UUID {
	id, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	return &id
}
