package handler

import (
	"net/http"
	"strconv"

	"github.com/bcnelson/squares/internal/api/param"
	"github.com/bcnelson/squares/internal/domain"
	"github.com/bcnelson/squares/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SquareHandler handles claim and unclaim endpoints.
type SquareHandler struct {
	claims *service.ClaimService
	logger *zap.Logger
}

// NewSquareHandler creates a new SquareHandler.
func NewSquareHandler(claims *service.ClaimService, logger *zap.Logger) *SquareHandler {
	return &SquareHandler{claims: claims, logger: logger}
}

// Claim claims a square in a group.
func (h *SquareHandler) Claim(w http.ResponseWriter, r *http.Request) {
	name, err := param.GroupName(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req domain.ClaimSquareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondStandardError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body", "")
		return
	}

	// Missing coordinates become -1 so the service reports them as out of range
	// after the lock check, keeping the lock error authoritative.
	params := service.ClaimParams{
		Row:        -1,
		Col:        -1,
		PlayerName: req.PlayerName,
		SquareName: req.SquareName,
		UserID:     req.UserID,
	}
	if req.Row != nil {
		params.Row = *req.Row
	}
	if req.Col != nil {
		params.Col = *req.Col
	}

	square, err := h.claims.ClaimSquare(r.Context(), name, params)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, square)
}

// Unclaim releases a square held by the userId query parameter.
func (h *SquareHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	name, err := param.GroupName(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	// Unparseable coordinates are reported as out of range by the service,
	// after the lock check.
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		row = -1
	}
	col, err := strconv.Atoi(chi.URLParam(r, "col"))
	if err != nil {
		col = -1
	}

	if err := h.claims.UnclaimSquare(r.Context(), name, row, col, r.URL.Query().Get("userId")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, &domain.UnclaimResponse{OK: true})
}
