package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bcnelson/squares/internal/domain"
)

func TestGroupNameUnique(t *testing.T) {
	store := New()
	ctx := context.Background()

	first := &domain.Group{Name: "office-pool", CreatedAt: time.Now()}
	if err := store.CreateGroup(ctx, first); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("Expected an ID to be assigned")
	}

	err := store.CreateGroup(ctx, &domain.Group{Name: "office-pool"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	if _, err := store.GetGroupByName(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSquareLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	sq := &domain.Square{GroupID: 1, Row: 3, Col: 7, PlayerName: "Alice", UserID: "a"}
	if err := store.CreateSquare(ctx, sq); err != nil {
		t.Fatalf("CreateSquare failed: %v", err)
	}

	dup := &domain.Square{GroupID: 1, Row: 3, Col: 7, PlayerName: "Bob", UserID: "b"}
	if err := store.CreateSquare(ctx, dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	// Same cell in another group is a different square
	other := &domain.Square{GroupID: 2, Row: 3, Col: 7, PlayerName: "Bob", UserID: "b"}
	if err := store.CreateSquare(ctx, other); err != nil {
		t.Fatalf("CreateSquare in other group failed: %v", err)
	}

	squares, _ := store.ListSquares(ctx, 1)
	if len(squares) != 1 || squares[0].PlayerName != "Alice" {
		t.Fatalf("Expected Alice's square only, got %+v", squares)
	}

	if err := store.DeleteSquare(ctx, 1, 3, 7, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for wrong owner, got %v", err)
	}
	if err := store.DeleteSquare(ctx, 1, 3, 7, "a"); err != nil {
		t.Fatalf("DeleteSquare failed: %v", err)
	}
	if _, err := store.GetSquare(ctx, 1, 3, 7); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected square to be gone, got %v", err)
	}
}
