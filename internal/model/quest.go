package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestType string

const (
	QuestTypeDaily   QuestType = "daily"
	QuestTypeOneTime QuestType = "one-time"
)

func (t QuestType) Valid() bool {
	return t == QuestTypeDaily || t == QuestTypeOneTime
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Quest is a user-defined task. XP and Gold are frozen at creation time from
// the difficulty preset and never recomputed.
type Quest struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int64      `json:"user_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	XP         int        `json:"xp"`
	Gold       int        `json:"gold"`
	Type       QuestType  `json:"type"`

	// Streak counts consecutive daily completions; a failure resets it to 0.
	Streak int `json:"streak"`

	// LastCompletedDate is the canonical day string of the last completion,
	// nil if the quest has never been completed.
	LastCompletedDate *string `json:"last_completed_date"`

	// CompletionHistory is a sparse per-day bitmap keyed by day string.
	CompletionHistory map[string]bool `json:"completion_history"`

	// ScheduledTime is an optional HH:MM reminder target.
	ScheduledTime *string `json:"scheduled_time"`

	CreatedAt time.Time `json:"created_at"`
}

// CompletedToday reports whether a second completion on the given day must be
// rejected. Only daily quests carry the once-per-day lockout.
func (q *Quest) CompletedToday(today string) bool {
	return q.Type == QuestTypeDaily && q.LastCompletedDate != nil && *q.LastCompletedDate == today
}

// Pending derives the per-day state: there is no stored "pending" flag, a
// daily quest becomes pending again the moment the calendar day advances.
func (q *Quest) Pending(today string) bool {
	return !q.CompletedToday(today)
}
