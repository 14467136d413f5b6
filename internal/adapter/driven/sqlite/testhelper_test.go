package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

// setupTestDB opens a migrated credential database in a per-test directory
// through NewDB, so tests run against the same WAL file layout as the
// application.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "keypanel.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := RunMigrations(db.Writer); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}
