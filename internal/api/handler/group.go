package handler

import (
	"net/http"
	"time"

	"github.com/bcnelson/squares/internal/api/param"
	"github.com/bcnelson/squares/internal/domain"
	"github.com/bcnelson/squares/internal/service"
	"go.uber.org/zap"
)

// GroupHandler handles group endpoints.
type GroupHandler struct {
	groups *service.GroupService
	logger *zap.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *service.GroupService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, logger: logger}
}

// createGroupResponse is the public part of a new group; the digits stay hidden.
type createGroupResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RevealTime time.Time `json:"reveal_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create creates a new group.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondStandardError(w, http.StatusBadRequest, domain.ErrCodeInvalidInput, "invalid request body", "")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, &createGroupResponse{
		ID:         group.ID,
		Name:       group.Name,
		RevealTime: group.RevealTime,
		CreatedAt:  group.CreatedAt,
	})
}

// Get gets a group view by name.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, err := param.GroupName(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	view, err := h.groups.GetGroupView(r.Context(), name)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
