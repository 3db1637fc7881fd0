package repository

import (
	"context"

	"habitquest/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// The methods below commit one quest resolution as a single transaction so a
// snapshot is never left partially mutated: the player, the quest and the
// ledger move together or not at all.

// SaveCompletion persists the outcome of a successful completion. A completed
// one-time quest is removed instead of updated; its ledger entry is the only
// state that survives it.
func (r *Repository) SaveCompletion(ctx context.Context, p *model.Player, q *model.Quest, removeQuest bool, entry *model.HistoryEntry) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := updatePlayerTx(ctx, tx, p); err != nil {
			return err
		}

		if removeQuest {
			if err := deleteQuestTx(ctx, tx, q.UserID, q.ID); err != nil {
				return err
			}
		} else {
			if err := updateQuestProgressTx(ctx, tx, q); err != nil {
				return err
			}
		}

		return appendHistoryTx(ctx, tx, entry)
	})
}

// SaveFailure persists a failure event: the damaged player, the streak reset
// and the Defeat ledger entry. The quest's last completed date is untouched.
func (r *Repository) SaveFailure(ctx context.Context, p *model.Player, questID uuid.UUID, entry *model.HistoryEntry) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := updatePlayerTx(ctx, tx, p); err != nil {
			return err
		}

		if err := resetStreakTx(ctx, tx, p.UserID, questID); err != nil {
			return err
		}

		return appendHistoryTx(ctx, tx, entry)
	})
}

// SaveSpend persists a gold spend (shop purchase or avatar unlock) together
// with its Shopping ledger entry.
func (r *Repository) SaveSpend(ctx context.Context, p *model.Player, entry *model.HistoryEntry) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := updatePlayerTx(ctx, tx, p); err != nil {
			return err
		}

		return appendHistoryTx(ctx, tx, entry)
	})
}

func resetStreakTx(ctx context.Context, tx *sqlx.Tx, userID int64, questID uuid.UUID) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE quests SET streak = 0 WHERE id = $1 AND user_id = $2`,
		questID, userID)
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
