package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryStatus string

const (
	HistoryStatusVictory  HistoryStatus = "Victory"
	HistoryStatusDefeat   HistoryStatus = "Defeat"
	HistoryStatusShopping HistoryStatus = "Shopping"
)

// HistoryEntry is one record of the append-only ledger. Entries are immutable
// and listed newest first.
type HistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	UserID    int64         `json:"user_id"`
	Timestamp time.Time     `json:"timestamp"`
	Title     string        `json:"title"`
	Status    HistoryStatus `json:"status"`
	Reason    *string       `json:"reason"`
}

func NewHistoryEntry(userID int64, title string, status HistoryStatus, reason *string) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Title:     title,
		Status:    status,
		Reason:    reason,
	}
}
