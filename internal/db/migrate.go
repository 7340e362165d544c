package db

import (
	"database/sql"
	"fmt"
)

// migrations is the ordered list of schema statements. Every statement is
// idempotent, so the whole list re-runs on each open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		short_id   TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		client     TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','on-hold','complete','archived')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS estimate_lines (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category     TEXT NOT NULL,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		amount_cents INTEGER NOT NULL DEFAULT 0,
		position     INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_lines_project ON estimate_lines(project_id)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		project_id       TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		start_date       TEXT NOT NULL,
		end_date         TEXT,
		duration_days    INTEGER NOT NULL DEFAULT 0,
		percent_complete INTEGER NOT NULL DEFAULT 0,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_items (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES schedules(project_id) ON DELETE CASCADE,
		seq              INTEGER NOT NULL,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		duration_days    INTEGER NOT NULL,
		end_date         TEXT NOT NULL,
		predecessor_id   TEXT,
		status           TEXT NOT NULL DEFAULT 'not-started'
		                 CHECK(status IN ('not-started','in-progress','complete','delayed')),
		percent_complete INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_items_project ON schedule_items(project_id, seq)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
