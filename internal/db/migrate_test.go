package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='session_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "session_entries", name)
}

func TestMigrate_RejectsUnknownKeys(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO session_entries (key, value, updated_at) VALUES ('refresh', 'x', 'now')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "taskboard.db")

	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	assert.FileExists(t, path)
}
