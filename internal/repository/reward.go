package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habitquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type reward struct {
	ID     uuid.UUID `db:"id"`
	UserID int64     `db:"user_id"`
	Title  string    `db:"title"`
	Cost   int       `db:"cost"`
}

func (w *reward) toModel() *model.Reward {
	return &model.Reward{
		ID:     w.ID,
		UserID: w.UserID,
		Title:  w.Title,
		Cost:   w.Cost,
	}
}

func (r *Repository) CreateReward(ctx context.Context, w *model.Reward) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return insertRewardTx(ctx, tx, w)
	})
}

func insertRewardTx(ctx context.Context, tx *sqlx.Tx, w *model.Reward) error {
	query, args, err := squirrel.
		Insert("rewards").
		SetMap(map[string]interface{}{
			"id":      w.ID,
			"user_id": w.UserID,
			"title":   w.Title,
			"cost":    w.Cost,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reward insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert reward: %w", err)
	}

	return nil
}

func (r *Repository) GetReward(ctx context.Context, userID int64, rewardID uuid.UUID) (*model.Reward, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "title", "cost").
		From("rewards").
		Where(squirrel.Eq{"id": rewardID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row reward
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

func (r *Repository) ListRewards(ctx context.Context, userID int64) ([]*model.Reward, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "title", "cost").
		From("rewards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("title ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []reward
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	rewards := make([]*model.Reward, 0, len(rows))
	for i := range rows {
		rewards = append(rewards, rows[i].toModel())
	}

	return rewards, nil
}

func (r *Repository) DeleteReward(ctx context.Context, userID int64, rewardID uuid.UUID) error {
	query, args, err := squirrel.
		Delete("rewards").
		Where(squirrel.Eq{"id": rewardID, "user_id": userID}).
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
