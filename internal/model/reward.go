package model

import "github.com/google/uuid"

// Reward is a user-defined shop item. Buying one only spends gold, it carries
// no other game-state coupling.
type Reward struct {
	ID     uuid.UUID `json:"id"`
	UserID int64     `json:"user_id"`
	Title  string    `json:"title"`
	Cost   int       `json:"cost"`
}
