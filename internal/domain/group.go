package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GridSize is the number of rows and columns in every grid.
const GridSize = 10

// Digits is an ordering of the numbers 0-9 assigned to the rows or columns of a grid.
// It is persisted as a JSON array.
type Digits []int

// Value implements driver.Valuer.
func (d Digits) Value() (driver.Value, error) {
	b, err := json.Marshal([]int(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *Digits) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("digits: unsupported scan type %T", src)
	}
	var out []int
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("digits: %w", err)
	}
	*d = out
	return nil
}

// IsPermutation reports whether d holds each of 0-9 exactly once.
func (d Digits) IsPermutation() bool {
	if len(d) != GridSize {
		return false
	}
	var seen [GridSize]bool
	for _, n := range d {
		if n < 0 || n >= GridSize || seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

// Group is one instance of the squares game.
// Groups are immutable once created.
type Group struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	RowNumbers Digits    `json:"-" db:"row_numbers"`
	ColNumbers Digits    `json:"-" db:"col_numbers"`
	RevealTime time.Time `json:"reveal_time" db:"reveal_time"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Locked reports whether the grid is frozen at the given instant.
// The grid locks exactly at the reveal time, which is also when the numbers become visible.
func (g *Group) Locked(now time.Time) bool {
	return !now.Before(g.RevealTime)
}

// CreateGroupRequest is the request body for creating a group.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// GroupView is the read model returned for a single group.
// RowNumbers and ColNumbers stay nil until the group is revealed.
type GroupView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RevealTime time.Time `json:"reveal_time"`
	Revealed   bool      `json:"revealed"`
	RowNumbers Digits    `json:"row_numbers"`
	ColNumbers Digits    `json:"col_numbers"`
	Squares    []*Square `json:"squares"`
}

// Claimed returns the square at (row, col), or nil when the cell is empty.
func (v *GroupView) Claimed(row, col int) *Square {
	for _, sq := range v.Squares {
		if sq.Row == row && sq.Col == col {
			return sq
		}
	}
	return nil
}
