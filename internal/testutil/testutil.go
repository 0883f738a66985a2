// Package testutil provides shared test helpers for building services over
// seed data and temporary snapshot stores.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/seed"
	"github.com/starford/ansuz/internal/snapshot"
	"github.com/starford/ansuz/internal/store"
)

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Seed decodes the embedded seed file.
func Seed(t *testing.T) *seed.Data {
	t.Helper()
	d, err := seed.Default()
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// Service creates an admin service over a fresh store holding the seed
// records. No events are published.
func Service(t *testing.T) *admin.Service {
	t.Helper()
	d := Seed(t)
	return admin.NewService(store.New(d.State()), nil, d.Analytics)
}

// SnapshotDir creates a temporary directory with a file snapshot provider.
func SnapshotDir(t *testing.T) (string, *snapshot.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := snapshot.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// SnapshotDB opens a temporary SQLite snapshot provider that is closed on
// cleanup. The database path is returned so a second connection can be opened.
func SnapshotDB(t *testing.T) (string, *snapshot.SQLite) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ansuz-test.db")
	db, err := snapshot.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return path, db
}
