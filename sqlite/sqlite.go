// Package sqlite provides a SQLite-based page store that saves and compiles
// page sources locally.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, applies connection pragmas and
// creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes writers; concurrent publishes queue here
	// instead of failing with SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// pragmas returns the statements run on a new connection. In-memory
// databases cannot use WAL.
func (db *DB) pragmas() []string {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	return pragmas
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// A page is identified by application, template and route; saving the
// same key again overwrites the row.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			application_id TEXT NOT NULL,
			template_id TEXT NOT NULL,
			route TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			markup TEXT NOT NULL DEFAULT '',
			style TEXT NOT NULL DEFAULT '',
			script TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			compiled TEXT NOT NULL DEFAULT '',
			compiled_hash TEXT NOT NULL DEFAULT '',
			server_rendered INTEGER NOT NULL DEFAULT 0,
			saved_at TEXT NOT NULL,
			compiled_at TEXT NOT NULL DEFAULT '',
			UNIQUE (application_id, template_id, route)
		);

		CREATE INDEX IF NOT EXISTS idx_pages_route ON pages(route);
	`

	_, err := db.db.Exec(schema)
	return err
}
