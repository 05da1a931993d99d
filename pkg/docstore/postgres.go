package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Postgres stores the document in a single-row table. The schema follows
// the read-modify-write contract: one blob, replaced wholesale.
type Postgres struct {
	db  *sqlx.DB
	key string
}

// NewPostgres prepares the documents table and returns the backend.
func NewPostgres(db *sqlx.DB, key string) (*Postgres, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	body       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return &Postgres{db: db, key: key}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT body FROM documents WHERE key = $1`
	var body []byte
	if err := p.db.GetContext(ctx, &body, query, p.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	return body, nil
}

func (p *Postgres) Save(ctx context.Context, data []byte) error {
	const query = `INSERT INTO documents (key, body, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key)
DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	if _, err := p.db.ExecContext(ctx, query, p.key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context) error {
	const query = `DELETE FROM documents WHERE key = $1`
	if _, err := p.db.ExecContext(ctx, query, p.key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
