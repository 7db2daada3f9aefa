package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/storage"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStorage returns session storage backed by a fresh in-memory database.
func NewTestStorage(t *testing.T) *storage.SQLiteSessionStorage {
	t.Helper()
	database := NewTestDB(t)
	return storage.NewSQLiteSessionStorage(database, db.NewSQLiteUnitOfWork(database))
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
