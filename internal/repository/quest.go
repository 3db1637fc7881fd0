package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habitquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type quest struct {
	ID                uuid.UUID `db:"id"`
	UserID            int64     `db:"user_id"`
	Title             string    `db:"title"`
	Difficulty        string    `db:"difficulty"`
	XP                int       `db:"xp"`
	Gold              int       `db:"gold"`
	QuestType         string    `db:"quest_type"`
	Streak            int       `db:"streak"`
	LastCompletedDate *string   `db:"last_completed_date"`
	CompletionHistory []byte    `db:"completion_history"`
	ScheduledTime     *string   `db:"scheduled_time"`
	CreatedAt         time.Time `db:"created_at"`
}

var questColumns = []string{
	"id", "user_id", "title", "difficulty", "xp", "gold", "quest_type",
	"streak", "last_completed_date", "completion_history", "scheduled_time", "created_at",
}

func (q *quest) toModel() (*model.Quest, error) {
	history := map[string]bool{}
	if len(q.CompletionHistory) > 0 {
		if err := json.Unmarshal(q.CompletionHistory, &history); err != nil {
			return nil, fmt.Errorf("failed to decode completion history: %w", err)
		}
	}

	return &model.Quest{
		ID:                q.ID,
		UserID:            q.UserID,
		Title:             q.Title,
		Difficulty:        model.Difficulty(q.Difficulty),
		XP:                q.XP,
		Gold:              q.Gold,
		Type:              model.QuestType(q.QuestType),
		Streak:            q.Streak,
		LastCompletedDate: q.LastCompletedDate,
		CompletionHistory: history,
		ScheduledTime:     q.ScheduledTime,
		CreatedAt:         q.CreatedAt,
	}, nil
}

func questSetMap(q *model.Quest) (map[string]interface{}, error) {
	history := q.CompletionHistory
	if history == nil {
		history = map[string]bool{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completion history: %w", err)
	}

	return map[string]interface{}{
		"id":                  q.ID,
		"user_id":             q.UserID,
		"title":               q.Title,
		"difficulty":          string(q.Difficulty),
		"xp":                  q.XP,
		"gold":                q.Gold,
		"quest_type":          string(q.Type),
		"streak":              q.Streak,
		"last_completed_date": q.LastCompletedDate,
		"completion_history":  encoded,
		"scheduled_time":      q.ScheduledTime,
		"created_at":          q.CreatedAt,
	}, nil
}

func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return insertQuestTx(ctx, tx, q)
	})
}

func insertQuestTx(ctx context.Context, tx *sqlx.Tx, q *model.Quest) error {
	setMap, err := questSetMap(q)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("quests").
		SetMap(setMap).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert quest: %w", err)
	}

	return nil
}

func (r *Repository) GetQuest(ctx context.Context, userID int64, questID uuid.UUID) (*model.Quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From("quests").
		Where(squirrel.Eq{"id": questID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row quest
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel()
}

func (r *Repository) ListQuests(ctx context.Context, userID int64) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From("quests").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []quest
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	quests := make([]*model.Quest, 0, len(rows))
	for i := range rows {
		q, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}

	return quests, nil
}

// ListQuestsScheduledAt returns, across all users, the quests whose reminder
// time matches the given HH:MM clock string. Used by the notification poller,
// which never writes.
func (r *Repository) ListQuestsScheduledAt(ctx context.Context, clock string) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From("quests").
		Where(squirrel.Eq{"scheduled_time": clock}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []quest
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	quests := make([]*model.Quest, 0, len(rows))
	for i := range rows {
		q, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}

	return quests, nil
}

func (r *Repository) DeleteQuest(ctx context.Context, userID int64, questID uuid.UUID) error {
	query, args, err := squirrel.
		Delete("quests").
		Where(squirrel.Eq{"id": questID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func updateQuestProgressTx(ctx context.Context, tx *sqlx.Tx, q *model.Quest) error {
	encoded, err := json.Marshal(q.CompletionHistory)
	if err != nil {
		return fmt.Errorf("failed to encode completion history: %w", err)
	}

	query, args, err := squirrel.
		Update("quests").
		SetMap(map[string]interface{}{
			"streak":              q.Streak,
			"last_completed_date": q.LastCompletedDate,
			"completion_history":  encoded,
		}).
		Where(squirrel.Eq{"id": q.ID, "user_id": q.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest progress query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func deleteQuestTx(ctx context.Context, tx *sqlx.Tx, userID int64, questID uuid.UUID) error {
	query, args, err := squirrel.
		Delete("quests").
		Where(squirrel.Eq{"id": questID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete quest: %w", err)
	}

	return nil
}
