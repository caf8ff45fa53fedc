// Package validation holds the input rules for groups and square claims.
package validation

import (
	"strconv"
	"strings"

	"github.com/bcnelson/squares/internal/domain"
)

// NormalizeGroupName trims and lower-cases a group name.
// Group names are unique after normalization.
func NormalizeGroupName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateGroupName validates an already normalized group name.
func ValidateGroupName(name string) error {
	if name == "" {
		return NewValidationError("name", name, "group name is required")
	}
	return nil
}

// ValidateCell checks that row and col address a cell of the grid.
func ValidateCell(row, col int) error {
	if row < 0 || row >= domain.GridSize {
		return NewValidationError("row", strconv.Itoa(row), "row and col must be between 0 and 9")
	}
	if col < 0 || col >= domain.GridSize {
		return NewValidationError("col", strconv.Itoa(col), "row and col must be between 0 and 9")
	}
	return nil
}

// ValidatePlayerName requires a non-blank display name.
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("playerName", name, "player name is required")
	}
	return nil
}

// ValidateUserID requires a non-blank claimant token.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return NewValidationError("userId", userID, "user ID is required")
	}
	return nil
}

// OptionalLabel trims an optional square label, mapping blank input to nil.
func OptionalLabel(label *string) *string {
	if label == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*label)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
