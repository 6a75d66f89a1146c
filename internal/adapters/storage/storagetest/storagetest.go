// Package storagetest opens migrated in-memory databases for store tests.
package storagetest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"beautrip/internal/adapters/storage"
)

// OpenDB returns a fully migrated in-memory database closed at test cleanup.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// InsertAccount adds a minimal account row so foreign keys resolve.
func InsertAccount(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO account (id, login_id, role, created_at) VALUES (?, ?, 'member', ?)`,
		id, "user-"+id, storage.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("insert account %s: %v", id, err)
	}
}
