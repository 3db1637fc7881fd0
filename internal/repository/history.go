package repository

import (
	"context"
	"fmt"
	"time"

	"habitquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type historyEntry struct {
	ID        uuid.UUID `db:"id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	Title     string    `db:"title"`
	Status    string    `db:"status"`
	Reason    *string   `db:"reason"`
}

func (h *historyEntry) toModel() *model.HistoryEntry {
	return &model.HistoryEntry{
		ID:        h.ID,
		UserID:    h.UserID,
		Timestamp: h.CreatedAt,
		Title:     h.Title,
		Status:    model.HistoryStatus(h.Status),
		Reason:    h.Reason,
	}
}

func (r *Repository) AppendHistory(ctx context.Context, entry *model.HistoryEntry) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return appendHistoryTx(ctx, tx, entry)
	})
}

func appendHistoryTx(ctx context.Context, tx *sqlx.Tx, entry *model.HistoryEntry) error {
	query, args, err := squirrel.
		Insert("history").
		SetMap(map[string]interface{}{
			"id":         entry.ID,
			"user_id":    entry.UserID,
			"created_at": entry.Timestamp,
			"title":      entry.Title,
			"status":     string(entry.Status),
			"reason":     entry.Reason,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build history insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// ListHistory returns ledger entries newest first. A limit of 0 means no limit.
func (r *Repository) ListHistory(ctx context.Context, userID int64, limit int) ([]*model.HistoryEntry, error) {
	builder := squirrel.
		Select("id", "user_id", "created_at", "title", "status", "reason").
		From("history").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []historyEntry
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	entries := make([]*model.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toModel())
	}

	return entries, nil
}
