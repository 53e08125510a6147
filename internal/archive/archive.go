// Package archive persists pipeline runs to a SQLite database so past
// recoveries can be listed and re-read. The knowledge store itself
// stays in-memory and per-run; this is an operator convenience only.
package archive

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

// Open opens (or creates) the archive with WAL mode and foreign keys
// enabled, and ensures the schema exists.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	source       TEXT    NOT NULL,
	triple_count INTEGER NOT NULL,
	created_at   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS triples (
	run_id    INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	subject   TEXT    NOT NULL,
	predicate TEXT    NOT NULL,
	object    TEXT    NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}
