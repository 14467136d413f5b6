package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	// setupTestDB already migrated; a second run must be a no-op.
	version, err := RunMigrations(db.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var name string
	err = db.Reader.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'credentials'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "credentials", name)
}

func TestRunMigrations_DirtySchema(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Writer.Exec(`UPDATE schema_migrations SET dirty = 1`)
	require.NoError(t, err)

	version, err := RunMigrations(db.Writer)

	require.ErrorIs(t, err, ErrDirtySchema)
	assert.Equal(t, uint(1), version)
}
