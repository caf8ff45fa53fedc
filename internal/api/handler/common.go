package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bcnelson/squares/internal/domain"
	"github.com/bcnelson/squares/internal/validation"
	"go.uber.org/zap"
)

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondStandardError writes a standardized JSON error response.
func respondStandardError(w http.ResponseWriter, status int, code, message, field string) {
	respondJSON(w, status, &domain.StandardErrorResponse{
		Error: domain.StandardError{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
}

// handleError converts domain errors to HTTP errors.
// Anything not recognized is logged and reported as a 500 without detail.
func handleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondStandardError(w, http.StatusBadRequest, domain.ErrCodeValidationError, verr.Message, verr.Field)
	case errors.Is(err, domain.ErrInvalidInput):
		respondStandardError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		respondStandardError(w, http.StatusNotFound, domain.ErrCodeResourceNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondStandardError(w, http.StatusConflict, domain.ErrCodeResourceAlreadyExists, err.Error(), "")
	case errors.Is(err, domain.ErrLocked):
		respondStandardError(w, http.StatusForbidden, domain.ErrCodeLocked, err.Error(), "")
	case errors.Is(err, domain.ErrForbidden):
		respondStandardError(w, http.StatusForbidden, domain.ErrCodeForbidden, err.Error(), "")
	default:
		logger.Error("request failed", zap.Error(err))
		respondStandardError(w, http.StatusInternalServerError, domain.ErrCodeInternalError, "internal server error", "")
	}
}

// decodeJSON decodes JSON from request body.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
