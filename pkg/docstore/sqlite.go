package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteDBName = "sigac.db"

// SQLite stores the document in a single-row table inside an embedded
// database file under the data directory.
type SQLite struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (creating if needed) the embedded database and
// prepares the documents table.
func NewSQLite(dataDir, key string) (*SQLite, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared", filepath.Join(dataDir, sqliteDBName))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	const ddl = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT body FROM documents WHERE key = ?`
	var body []byte
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	return body, nil
}

func (s *SQLite) Save(ctx context.Context, data []byte) error {
	const query = `INSERT INTO documents (key, body, updated_at)
VALUES (?, ?, datetime('now'))
ON CONFLICT (key)
DO UPDATE SET body = excluded.body, updated_at = datetime('now')`
	if _, err := s.db.ExecContext(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context) error {
	const query = `DELETE FROM documents WHERE key = ?`
	if _, err := s.db.ExecContext(ctx, query, s.key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
