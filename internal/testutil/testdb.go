package testutil

import (
	"database/sql"
	"testing"

	"github.com/mhollis/lath/internal/db"
)

// NewTestDB opens a throwaway in-memory database with the lath schema
// applied, closed when the test finishes. Repository and service tests
// run against this instead of mocks.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps a test database in the sqlite unit of work, for tests
// that drive transactional stores directly.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
