package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habitquest/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

type player struct {
	UserID          int64  `db:"user_id"`
	Level           int    `db:"level"`
	CurrentXP       int    `db:"current_xp"`
	MaxXP           int    `db:"max_xp"`
	Health          int    `db:"health"`
	Gold            int    `db:"gold"`
	AvatarID        string `db:"avatar_id"`
	UnlockedAvatars []byte `db:"unlocked_avatars"`
}

func (p *player) toModel() (*model.Player, error) {
	var unlocked []string
	if err := json.Unmarshal(p.UnlockedAvatars, &unlocked); err != nil {
		return nil, fmt.Errorf("failed to decode unlocked avatars: %w", err)
	}

	return &model.Player{
		UserID:          p.UserID,
		Level:           p.Level,
		CurrentXP:       p.CurrentXP,
		MaxXP:           p.MaxXP,
		Health:          p.Health,
		Gold:            p.Gold,
		AvatarID:        p.AvatarID,
		UnlockedAvatars: unlocked,
	}, nil
}

func playerSetMap(p *model.Player) (map[string]interface{}, error) {
	unlocked, err := json.Marshal(p.UnlockedAvatars)
	if err != nil {
		return nil, fmt.Errorf("failed to encode unlocked avatars: %w", err)
	}

	return map[string]interface{}{
		"level":            p.Level,
		"current_xp":       p.CurrentXP,
		"max_xp":           p.MaxXP,
		"health":           p.Health,
		"gold":             p.Gold,
		"avatar_id":        p.AvatarID,
		"unlocked_avatars": unlocked,
	}, nil
}

func (r *Repository) GetPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	query, args, err := squirrel.
		Select("user_id", "level", "current_xp", "max_xp", "health", "gold", "avatar_id", "unlocked_avatars").
		From("players").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row player
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel()
}

func (r *Repository) CreatePlayer(ctx context.Context, p *model.Player) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return createPlayerTx(ctx, tx, p)
	})
}

func createPlayerTx(ctx context.Context, tx *sqlx.Tx, p *model.Player) error {
	setMap, err := playerSetMap(p)
	if err != nil {
		return err
	}
	setMap["user_id"] = p.UserID

	query, args, err := squirrel.
		Insert("players").
		SetMap(setMap).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build player insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

func (r *Repository) UpdatePlayer(ctx context.Context, p *model.Player) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return updatePlayerTx(ctx, tx, p)
	})
}

func updatePlayerTx(ctx context.Context, tx *sqlx.Tx, p *model.Player) error {
	setMap, err := playerSetMap(p)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update("players").
		SetMap(setMap).
		Where(squirrel.Eq{"user_id": p.UserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build player update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
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
