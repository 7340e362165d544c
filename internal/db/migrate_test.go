package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, table := range []string{"projects", "estimate_lines", "schedules", "schedule_items"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Rerunnable(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Migrations are idempotent; a second run must not fail.
	assert.NoError(t, Migrate(database))
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(
		`INSERT INTO estimate_lines (id, project_id, category, name, created_at)
		 VALUES ('l1', 'missing-project', 'framing', 'Walls', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "orphan line item must violate the foreign key")
}
