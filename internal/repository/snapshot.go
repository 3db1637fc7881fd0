package repository

import (
	"context"
	"errors"

	"habitquest/internal/model"

	"github.com/jmoiron/sqlx"
)

// ExportSnapshot assembles the full persisted state of one user. The same
// document shape is written to the remote store and handed to the client on
// session bootstrap.
func (r *Repository) ExportSnapshot(ctx context.Context, userID int64) (*model.Snapshot, error) {
	player, err := r.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	quests, err := r.ListQuests(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := r.ListHistory(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	rewards, err := r.ListRewards(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{
		Player:  player,
		Quests:  quests,
		History: history,
		Rewards: rewards,
	}, nil
}

// ImportSnapshot replaces the user's game state with the given snapshot in one
// transaction. Prefs are local-only and survive the import untouched. Used
// when the remote copy wins on sign-in.
func (r *Repository) ImportSnapshot(ctx context.Context, userID int64, snap *model.Snapshot) error {
	// A remote document can decode to an empty struct; refuse to wipe local
	// state for a snapshot that carries no player.
	if snap == nil || snap.Player == nil {
		return ErrInvalidSnapshot
	}

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := wipeAggregatesTx(ctx, tx, userID); err != nil {
			return err
		}

		player := snap.Player
		player.UserID = userID
		err := updatePlayerTx(ctx, tx, player)
		if errors.Is(err, ErrNotFound) {
			err = createPlayerTx(ctx, tx, player)
		}
		if err != nil {
			return err
		}

		for _, q := range snap.Quests {
			q.UserID = userID
			if err := insertQuestTx(ctx, tx, q); err != nil {
				return err
			}
		}

		for _, entry := range snap.History {
			entry.UserID = userID
			if err := appendHistoryTx(ctx, tx, entry); err != nil {
				return err
			}
		}

		for _, w := range snap.Rewards {
			w.UserID = userID
			if err := insertRewardTx(ctx, tx, w); err != nil {
				return err
			}
		}

		return nil
	})
}

// ResetAll wipes every aggregate of the user, prefs included, and recreates
// the default player and prefs in the same transaction.
func (r *Repository) ResetAll(ctx context.Context, userID int64) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		// Quests, history, rewards and prefs cascade from the players row.
		if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE user_id = $1`, userID); err != nil {
			return err
		}

		if err := createPlayerTx(ctx, tx, model.NewPlayer(userID)); err != nil {
			return err
		}

		return savePrefsTx(ctx, tx, model.NewUserPrefs(userID))
	})
}

func wipeAggregatesTx(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	for _, table := range []string{"history", "quests", "rewards"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return err
		}
	}
	return nil
}
