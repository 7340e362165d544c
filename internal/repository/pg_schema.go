package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		short_id   TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		client     TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS estimate_lines (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category     TEXT NOT NULL,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		amount_cents BIGINT NOT NULL DEFAULT 0,
		position     INTEGER NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_lines_project ON estimate_lines(project_id)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		project_id       TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		start_date       DATE NOT NULL,
		end_date         DATE,
		duration_days    INTEGER NOT NULL DEFAULT 0,
		percent_complete INTEGER NOT NULL DEFAULT 0,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_items (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES schedules(project_id) ON DELETE CASCADE,
		seq              INTEGER NOT NULL,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT '',
		start_date       DATE NOT NULL,
		duration_days    INTEGER NOT NULL,
		end_date         DATE NOT NULL,
		predecessor_id   TEXT,
		status           TEXT NOT NULL DEFAULT 'not-started',
		percent_complete INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_items_project ON schedule_items(project_id, seq)`,
}

// EnsurePgSchema creates the hosted-backend tables if they don't exist.
func EnsurePgSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range pgSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pg schema statement %d: %w", i, err)
		}
	}
	return nil
}
