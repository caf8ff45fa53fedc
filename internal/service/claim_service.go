package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bcnelson/squares/internal/domain"
	"github.com/bcnelson/squares/internal/storage"
	"github.com/bcnelson/squares/internal/validation"
	"go.uber.org/zap"
)

// ClaimService claims and releases squares.
type ClaimService struct {
	store  storage.Storage
	groups *GroupService
	logger *zap.Logger
}

// NewClaimService creates a new ClaimService.
func NewClaimService(store storage.Storage, groups *GroupService, logger *zap.Logger) *ClaimService {
	return &ClaimService{store: store, groups: groups, logger: logger}
}

// ClaimParams are the inputs of a claim. PlayerName and UserID come from the caller's
// client-side identity.
type ClaimParams struct {
	Row        int
	Col        int
	PlayerName string
	SquareName *string
	UserID     string
}

// resolveUnlocked loads the group and fails with domain.ErrLocked once it has been revealed.
// The lock is checked on every mutation regardless of what the client last saw.
func (s *ClaimService) resolveUnlocked(ctx context.Context, groupName string) (*domain.Group, error) {
	group, err := s.groups.Resolve(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if s.groups.Locked(group) {
		return nil, fmt.Errorf("group %q: squares are locked after reveal time: %w", group.Name, domain.ErrLocked)
	}
	return group, nil
}

// ClaimSquare claims an empty cell of an unlocked group.
// When two callers race for the same cell exactly one succeeds; the other gets domain.ErrAlreadyExists.
func (s *ClaimService) ClaimSquare(ctx context.Context, groupName string, p ClaimParams) (*domain.Square, error) {
	group, err := s.resolveUnlocked(ctx, groupName)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateCell(p.Row, p.Col); err != nil {
		return nil, err
	}
	if err := validation.ValidatePlayerName(p.PlayerName); err != nil {
		return nil, err
	}
	if err := validation.ValidateUserID(p.UserID); err != nil {
		return nil, err
	}

	square := &domain.Square{
		GroupID:    group.ID,
		Row:        p.Row,
		Col:        p.Col,
		PlayerName: strings.TrimSpace(p.PlayerName),
		SquareName: validation.OptionalLabel(p.SquareName),
		UserID:     strings.TrimSpace(p.UserID),
		ClaimedAt:  s.groups.Now(),
	}

	if err := s.store.CreateSquare(ctx, square); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("square (%d, %d) is already claimed: %w", p.Row, p.Col, err)
		}
		return nil, fmt.Errorf("claiming square: %w", err)
	}

	s.logger.Info("square claimed",
		zap.String("group", group.Name),
		zap.Int("row", square.Row),
		zap.Int("col", square.Col),
		zap.String("player", square.PlayerName),
	)
	return square, nil
}

// UnclaimSquare releases a square held by userID. The lock check runs before the
// ownership check, so a locked grid reports domain.ErrLocked even to non-owners.
func (s *ClaimService) UnclaimSquare(ctx context.Context, groupName string, row, col int, userID string) error {
	group, err := s.resolveUnlocked(ctx, groupName)
	if err != nil {
		return err
	}

	if err := validation.ValidateCell(row, col); err != nil {
		return err
	}
	if err := validation.ValidateUserID(userID); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)

	square, err := s.store.GetSquare(ctx, group.ID, row, col)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("square (%d, %d): %w", row, col, err)
		}
		return fmt.Errorf("loading square: %w", err)
	}

	if square.UserID != userID {
		return fmt.Errorf("you can only remove your own squares: %w", domain.ErrForbidden)
	}

	// Conditional on the owner: a square released and re-claimed by someone else
	// in between is reported as gone rather than deleted.
	if err := s.store.DeleteSquare(ctx, group.ID, row, col, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("square (%d, %d): %w", row, col, err)
		}
		return fmt.Errorf("unclaiming square: %w", err)
	}

	s.logger.Info("square unclaimed",
		zap.String("group", group.Name),
		zap.Int("row", row),
		zap.Int("col", col),
	)
	return nil
}
