package storage

import (
	"context"

	"github.com/bcnelson/squares/internal/domain"
)

// Storage defines the interface for the storage layer.
// Implementations must be safe for concurrent use and must enforce
// uniqueness of group names and of (group, row, col) themselves.
type Storage interface {
	// Close closes the storage connection.
	Close() error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Groups
	CreateGroup(ctx context.Context, group *domain.Group) error
	GetGroupByName(ctx context.Context, name string) (*domain.Group, error)

	// Squares
	CreateSquare(ctx context.Context, square *domain.Square) error
	GetSquare(ctx context.Context, groupID int64, row, col int) (*domain.Square, error)
	ListSquares(ctx context.Context, groupID int64) ([]*domain.Square, error)
	// DeleteSquare removes the square only if it is still held by userID.
	DeleteSquare(ctx context.Context, groupID int64, row, col int, userID string) error
}
