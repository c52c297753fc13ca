package testutil

import (
	"database/sql"
	"testing"

	"github.com/tobiasvance/remedy/internal/db"
)

// NewTestDB opens a fully migrated in-memory store that closes with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps the test database in a real transactional UnitOfWork, so
// service tests exercise the same commit/rollback path as production.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
