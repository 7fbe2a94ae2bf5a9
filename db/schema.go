package db

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema crea las tablas si no existen. El esquema es pequeño y
// estable, así que se aplica al arranque en vez de llevar migraciones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clubs (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			division        TEXT NOT NULL,
			points          INTEGER NOT NULL DEFAULT 0,
			played          INTEGER NOT NULL DEFAULT 0,
			won             INTEGER NOT NULL DEFAULT 0,
			drawn           INTEGER NOT NULL DEFAULT 0,
			lost            INTEGER NOT NULL DEFAULT 0,
			goals_for       INTEGER NOT NULL DEFAULT 0,
			goals_against   INTEGER NOT NULL DEFAULT 0,
			goal_difference INTEGER NOT NULL DEFAULT 0,
			category_stats  JSONB NOT NULL DEFAULT '{}',
			disabled_series JSONB,
			crest_key       TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id              TEXT PRIMARY KEY,
			local_club_id   TEXT NOT NULL REFERENCES clubs(id),
			visitor_club_id TEXT NOT NULL REFERENCES clubs(id),
			match_date      TIMESTAMPTZ NOT NULL,
			results         JSONB NOT NULL DEFAULT '{}',
			local_points    INTEGER NOT NULL DEFAULT 0,
			visitor_points  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS season_state (
			id              INTEGER PRIMARY KEY,
			sub12_finalized BOOLEAN NOT NULL DEFAULT FALSE,
			date3_passed    BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id                TEXT PRIMARY KEY,
			rut               TEXT NOT NULL,
			first_name        TEXT NOT NULL,
			last_name         TEXT NOT NULL,
			birth_date        TIMESTAMPTZ NOT NULL,
			club_id           TEXT NOT NULL REFERENCES clubs(id),
			category          TEXT NOT NULL,
			age               INTEGER NOT NULL,
			registration_date TIMESTAMPTZ NOT NULL,
			CONSTRAINT players_rut_key UNIQUE (rut)
		)`,
		`CREATE TABLE IF NOT EXISTS suspensions (
			id         TEXT PRIMARY KEY,
			player_rut TEXT NOT NULL REFERENCES players(rut),
			start_date TIMESTAMPTZ NOT NULL,
			duration   INTEGER NOT NULL,
			unit       TEXT NOT NULL,
			reason     TEXT,
			end_date   TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS matches_date_idx ON matches (match_date)`,
		`CREATE INDEX IF NOT EXISTS players_club_idx ON players (club_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
