package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcnelson/squares/internal/domain"
	"github.com/bcnelson/squares/internal/storage"
	"github.com/bcnelson/squares/internal/validation"
	"go.uber.org/zap"
)

// GroupService creates groups and assembles their views.
// It also owns the clock that decides whether a group is locked.
type GroupService struct {
	store      storage.Storage
	revealTime time.Time
	logger     *zap.Logger
	now        func() time.Time
	shuffle    Shuffler
}

// Option configures a GroupService.
type Option func(*GroupService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *GroupService) { s.now = now }
}

// WithShuffler replaces the random digit generator.
func WithShuffler(shuffle Shuffler) Option {
	return func(s *GroupService) { s.shuffle = shuffle }
}

// NewGroupService creates a new GroupService. Every group it creates reveals at revealTime.
func NewGroupService(store storage.Storage, revealTime time.Time, logger *zap.Logger, opts ...Option) *GroupService {
	s := &GroupService{
		store:      store,
		revealTime: revealTime,
		logger:     logger,
		now:        time.Now,
		shuffle:    Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service's current time.
func (s *GroupService) Now() time.Time {
	return s.now()
}

// CreateGroup creates a group with freshly shuffled row and column digits.
// The returned group carries the digits, but callers must not expose them before reveal.
func (s *GroupService) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	name = validation.NormalizeGroupName(name)
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, err
	}

	group := &domain.Group{
		Name:       name,
		RowNumbers: s.shuffle(),
		ColNumbers: s.shuffle(),
		RevealTime: s.revealTime,
		CreatedAt:  s.now(),
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("a group named %q: %w", name, err)
		}
		return nil, fmt.Errorf("creating group: %w", err)
	}

	s.logger.Info("group created", zap.Int64("group_id", group.ID), zap.String("name", group.Name))
	return group, nil
}

// Resolve looks up a group by name, normalizing the name first.
func (s *GroupService) Resolve(ctx context.Context, name string) (*domain.Group, error) {
	name = validation.NormalizeGroupName(name)
	group, err := s.store.GetGroupByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		return nil, fmt.Errorf("loading group: %w", err)
	}
	return group, nil
}

// Locked reports whether the group's grid is frozen right now.
func (s *GroupService) Locked(group *domain.Group) bool {
	return group.Locked(s.now())
}

// GetGroupView returns the group's grid. Row and column digits are included
// only once the reveal time has passed.
func (s *GroupService) GetGroupView(ctx context.Context, name string) (*domain.GroupView, error) {
	group, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	squares, err := s.store.ListSquares(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("loading squares: %w", err)
	}

	view := &domain.GroupView{
		ID:         group.ID,
		Name:       group.Name,
		RevealTime: group.RevealTime,
		Revealed:   s.Locked(group),
		Squares:    squares,
	}
	if view.Revealed {
		view.RowNumbers = group.RowNumbers
		view.ColNumbers = group.ColNumbers
	}
	return view, nil
}
