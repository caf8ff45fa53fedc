package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bcnelson/squares/internal/domain"
)

// Store is an in-memory implementation of the storage interface for testing.
type Store struct {
	mu sync.RWMutex

	nextGroupID  int64
	nextSquareID int64

	groups  map[string]*domain.Group  // key: name
	squares map[cellKey]*domain.Square // key: groupID,row,col
}

type cellKey struct {
	groupID  int64
	row, col int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		groups:  make(map[string]*domain.Group),
		squares: make(map[cellKey]*domain.Square),
	}
}

func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// ============================================
// Groups
// ============================================

func (s *Store) CreateGroup(ctx context.Context, group *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.groups[group.Name]; exists {
		return domain.ErrAlreadyExists
	}
	s.nextGroupID++
	group.ID = s.nextGroupID
	stored := *group
	s.groups[group.Name] = &stored
	return nil
}

func (s *Store) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, exists := s.groups[name]
	if !exists {
		return nil, domain.ErrNotFound
	}
	out := *group
	return &out, nil
}

// ============================================
// Squares
// ============================================

func (s *Store) CreateSquare(ctx context.Context, square *domain.Square) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cellKey{square.GroupID, square.Row, square.Col}
	if _, exists := s.squares[key]; exists {
		return domain.ErrAlreadyExists
	}
	s.nextSquareID++
	square.ID = s.nextSquareID
	stored := *square
	s.squares[key] = &stored
	return nil
}

func (s *Store) GetSquare(ctx context.Context, groupID int64, row, col int) (*domain.Square, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	square, exists := s.squares[cellKey{groupID, row, col}]
	if !exists {
		return nil, domain.ErrNotFound
	}
	out := *square
	return &out, nil
}

func (s *Store) ListSquares(ctx context.Context, groupID int64) ([]*domain.Square, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	squares := make([]*domain.Square, 0)
	for key, square := range s.squares {
		if key.groupID == groupID {
			out := *square
			squares = append(squares, &out)
		}
	}
	sort.Slice(squares, func(i, j int) bool {
		if squares[i].Row != squares[j].Row {
			return squares[i].Row < squares[j].Row
		}
		return squares[i].Col < squares[j].Col
	})
	return squares, nil
}

func (s *Store) DeleteSquare(ctx context.Context, groupID int64, row, col int, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cellKey{groupID, row, col}
	square, exists := s.squares[key]
	if !exists || square.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.squares, key)
	return nil
}
