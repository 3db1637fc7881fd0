package repository

import "github.com/jmoiron/sqlx"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		user_id          BIGINT PRIMARY KEY,
		level            INT NOT NULL DEFAULT 1,
		current_xp       INT NOT NULL DEFAULT 0,
		max_xp           INT NOT NULL DEFAULT 500,
		health           INT NOT NULL DEFAULT 100,
		gold             INT NOT NULL DEFAULT 0,
		avatar_id        TEXT NOT NULL,
		unlocked_avatars JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS quests (
		id                  UUID PRIMARY KEY,
		user_id             BIGINT NOT NULL REFERENCES players (user_id) ON DELETE CASCADE,
		title               TEXT NOT NULL,
		difficulty          TEXT NOT NULL,
		xp                  INT NOT NULL,
		gold                INT NOT NULL,
		quest_type          TEXT NOT NULL,
		streak              INT NOT NULL DEFAULT 0,
		last_completed_date TEXT,
		completion_history  JSONB NOT NULL DEFAULT '{}',
		scheduled_time      TEXT,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS quests_user_id_idx ON quests (user_id)`,
	`CREATE INDEX IF NOT EXISTS quests_scheduled_time_idx ON quests (scheduled_time)`,
	`CREATE TABLE IF NOT EXISTS history (
		id         UUID PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES players (user_id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL,
		reason     TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS history_user_id_created_at_idx ON history (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS rewards (
		id      UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES players (user_id) ON DELETE CASCADE,
		title   TEXT NOT NULL,
		cost    INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_prefs (
		user_id             BIGINT PRIMARY KEY REFERENCES players (user_id) ON DELETE CASCADE,
		theme               TEXT NOT NULL,
		last_seen_day       TEXT NOT NULL DEFAULT '',
		notes               JSONB NOT NULL DEFAULT '[]',
		install_prompt_seen BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

func bootstrapSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
