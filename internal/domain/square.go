package domain

import "time"

// Square is a single claimed cell of a group's grid.
// At most one Square exists per (group, row, col).
type Square struct {
	ID         int64     `json:"id" db:"id"`
	GroupID    int64     `json:"group_id" db:"group_id"`
	Row        int       `json:"row" db:"row"`
	Col        int       `json:"col" db:"col"`
	PlayerName string    `json:"player_name" db:"player_name"`
	SquareName *string   `json:"square_name" db:"square_name"`
	UserID     string    `json:"user_id" db:"user_id"`
	ClaimedAt  time.Time `json:"claimed_at" db:"claimed_at"`
}

// ClaimSquareRequest is the request body for claiming a square.
// Row and Col are pointers so a missing field can be told apart from zero.
type ClaimSquareRequest struct {
	Row        *int    `json:"row"`
	Col        *int    `json:"col"`
	PlayerName string  `json:"playerName"`
	SquareName *string `json:"squareName,omitempty"`
	UserID     string  `json:"userId"`
}

// UnclaimResponse acknowledges a successful unclaim.
type UnclaimResponse struct {
	OK bool `json:"ok"`
}
