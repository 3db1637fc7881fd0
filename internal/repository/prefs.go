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

type userPrefs struct {
	UserID            int64  `db:"user_id"`
	Theme             string `db:"theme"`
	LastSeenDay       string `db:"last_seen_day"`
	Notes             []byte `db:"notes"`
	InstallPromptSeen bool   `db:"install_prompt_seen"`
}

func (p *userPrefs) toModel() (*model.UserPrefs, error) {
	notes := []string{}
	if len(p.Notes) > 0 {
		if err := json.Unmarshal(p.Notes, &notes); err != nil {
			return nil, fmt.Errorf("failed to decode notes: %w", err)
		}
	}

	return &model.UserPrefs{
		UserID:            p.UserID,
		Theme:             p.Theme,
		LastSeenDay:       p.LastSeenDay,
		Notes:             notes,
		InstallPromptSeen: p.InstallPromptSeen,
	}, nil
}

func (r *Repository) GetPrefs(ctx context.Context, userID int64) (*model.UserPrefs, error) {
	query, args, err := squirrel.
		Select("user_id", "theme", "last_seen_day", "notes", "install_prompt_seen").
		From("user_prefs").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row userPrefs
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel()
}

func (r *Repository) SavePrefs(ctx context.Context, prefs *model.UserPrefs) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return savePrefsTx(ctx, tx, prefs)
	})
}

func savePrefsTx(ctx context.Context, tx *sqlx.Tx, prefs *model.UserPrefs) error {
	notes := prefs.Notes
	if notes == nil {
		notes = []string{}
	}
	encoded, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	query, args, err := squirrel.
		Insert("user_prefs").
		SetMap(map[string]interface{}{
			"user_id":             prefs.UserID,
			"theme":               prefs.Theme,
			"last_seen_day":       prefs.LastSeenDay,
			"notes":               encoded,
			"install_prompt_seen": prefs.InstallPromptSeen,
		}).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			last_seen_day = EXCLUDED.last_seen_day,
			notes = EXCLUDED.notes,
			install_prompt_seen = EXCLUDED.install_prompt_seen`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build prefs upsert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert prefs: %w", err)
	}

	return nil
}
