package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/internalerr"
	"github.com/cognicore/ddc/pkg/ddc/store"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	parent_id TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL,
	number TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS entries_parent ON entries(parent_id, position);

CREATE TABLE IF NOT EXISTS queries (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	input TEXT NOT NULL,
	hits INTEGER NOT NULL,
	at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS queries_at ON queries(at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// ReplaceCatalog swaps the stored catalog for roots in one transaction
func (s *sqliteStore) ReplaceCatalog(ctx context.Context, roots []*catalog.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (id, parent_id, position, number, description)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range store.Flatten(roots) {
		if _, err := stmt.ExecContext(ctx, n.ID, n.ParentID, n.Position, n.Number, n.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCatalog rebuilds the tree from the entries table
func (s *sqliteStore) LoadCatalog(ctx context.Context) (*catalog.Tree, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, parent_id, position, number, description
FROM entries
ORDER BY parent_id, position;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []store.Node
	for rows.Next() {
		var n store.Node
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Position, &n.Number, &n.Description); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, internalerr.ErrNotFound
	}

	roots, err := store.Build(nodes)
	if err != nil {
		return nil, err
	}
	return catalog.New(roots)
}

// RecordQuery inserts a query history record
func (s *sqliteStore) RecordQuery(ctx context.Context, q store.QueryRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO queries (id, kind, input, hits, at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind=excluded.kind,
	input=excluded.input,
	hits=excluded.hits,
	at=excluded.at;
`, q.ID, q.Kind, q.Input, q.Hits, q.At.UTC().Format(timeLayout))
	return err
}

// RecentQueries returns up to k queries, newest first
func (s *sqliteStore) RecentQueries(ctx context.Context, k int) ([]store.QueryRecord, error) {
	if k <= 0 {
		k = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, input, hits, at
FROM queries
ORDER BY at DESC, id DESC
LIMIT ?;
`, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.QueryRecord
	for rows.Next() {
		var (
			q  store.QueryRecord
			at string
		)
		if err := rows.Scan(&q.ID, &q.Kind, &q.Input, &q.Hits, &at); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("query %s: parse time: %w", q.ID, err)
		}
		q.At = parsed
		out = append(out, q)
	}
	return out, rows.Err()
}
