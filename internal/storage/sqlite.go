// Package storage writes converted records to a SQLite database.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/opus4tools/opusx/internal/extract"
	"github.com/opus4tools/opusx/internal/record"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per converted document, in source order
		CREATE TABLE IF NOT EXISTS documents (
			position INTEGER PRIMARY KEY,
			type TEXT NOT NULL
		);

		-- Flat record fields; ord keeps the record's field order
		CREATE TABLE IF NOT EXISTS fields (
			position INTEGER NOT NULL REFERENCES documents(position),
			ord INTEGER NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (position, name)
		);

		CREATE INDEX IF NOT EXISTS idx_fields_name ON fields(name);

		-- Full-text search over titles and authors
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			position UNINDEXED,
			title,
			authors
		);
	`

	_, err := db.Exec(schema)
	return err
}

// WriteSQLite writes records to a fresh database at path, replacing any existing file.
func WriteSQLite(path string, records []record.Record) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Rebuild(records); err != nil {
		return err
	}
	return nil
}

// Rebuild clears the database and inserts records in order.
func (d *DB) Rebuild(records []record.Record) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"fields", "documents", "documents_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	docStmt, err := tx.Prepare(`INSERT INTO documents (position, type) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing documents insert: %w", err)
	}
	defer docStmt.Close()

	fieldStmt, err := tx.Prepare(`INSERT INTO fields (position, ord, name, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fields insert: %w", err)
	}
	defer fieldStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO documents_fts (position, title, authors) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, rec := range records {
		pos := i + 1
		if _, err := docStmt.Exec(pos, rec.Value(extract.FieldType)); err != nil {
			return 0, fmt.Errorf("inserting document %d: %w", pos, err)
		}
		for ord, name := range rec.Keys() {
			if _, err := fieldStmt.Exec(pos, ord, name, rec.Value(name)); err != nil {
				return 0, fmt.Errorf("inserting field %s of document %d: %w", name, pos, err)
			}
		}
		authors := strings.ReplaceAll(rec.Value(extract.FieldAuthors), extract.PersonSeparator, ", ")
		if _, err := ftsStmt.Exec(pos, rec.Value(extract.FieldTitle), authors); err != nil {
			return 0, fmt.Errorf("inserting fts for document %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(records), nil
}

// Count returns the number of documents.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Record rebuilds the record stored at position (1-based). Returns nil if absent.
func (d *DB) Record(position int) (*record.Record, error) {
	rows, err := d.db.Query(`SELECT name, value FROM fields WHERE position = ? ORDER BY ord`, position)
	if err != nil {
		return nil, fmt.Errorf("reading document %d: %w", position, err)
	}
	defer rows.Close()

	rec := record.New()
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		rec.Set(name, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading document %d: %w", position, err)
	}
	if rec.Len() == 0 {
		return nil, nil
	}
	return &rec, nil
}

// Search returns positions of documents whose title or authors match query.
func (d *DB) Search(query string, limit int) ([]int, error) {
	rows, err := d.db.Query(`
		SELECT position FROM documents_fts
		WHERE documents_fts MATCH ?
		ORDER BY CAST(position AS INTEGER)
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~|.") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
