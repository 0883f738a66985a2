package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	blob       BLOB NOT NULL,
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite implements Provider with a key/value table.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at dsn and applies the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Load returns the blob stored under key. A blob whose stored checksum no
// longer matches its bytes is reported as corrupt.
func (db *SQLite) Load(key string) ([]byte, error) {
	var (
		blob []byte
		sum  string
	)
	err := db.conn.QueryRow(`SELECT blob, checksum FROM snapshots WHERE key = ?`, key).Scan(&blob, &sum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot: load %s: %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("snapshot: load %s: %w", key, err)
	}
	if sum != "" && sum != checksum.Sum(blob) {
		return nil, fmt.Errorf("snapshot: load %s: checksum mismatch: %w", key, apperr.ErrCorruptSnapshot)
	}
	return blob, nil
}

// Save upserts the blob under key.
func (db *SQLite) Save(key string, blob []byte) error {
	_, err := db.conn.Exec(`
		INSERT INTO snapshots (key, blob, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			blob       = excluded.blob,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, key, blob, checksum.Sum(blob), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("snapshot: save %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}
