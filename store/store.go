// Package store persists named layout documents in SQLite. It is the
// persistence collaborator of the editing core: it stores the external JSON
// produced by the layoutfile package and hands it back verbatim.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when a layout id does not exist.
var ErrNotFound = errors.New("layout not found")

const schema = `
CREATE TABLE IF NOT EXISTS layouts (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    data     TEXT NOT NULL,
    saved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_layouts_name ON layouts(name);
`

// Record is one saved layout.
type Record struct {
	ID      string
	Name    string
	Data    []byte // external JSON layout document
	SavedAt time.Time
}

// Store wraps the layouts database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a layout store at the given SQLite path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a new layout record and returns its generated id.
func (s *Store) Save(ctx context.Context, name string, data []byte) (Record, error) {
	rec := Record{
		ID:      uuid.NewString(),
		Name:    name,
		Data:    data,
		SavedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO layouts (id, name, data, saved_at)
        VALUES (?, ?, ?, ?)
    `, rec.ID, rec.Name, string(rec.Data), rec.SavedAt.Format(time.RFC3339))
	if err != nil {
		return Record{}, fmt.Errorf("insert layout: %w", err)
	}
	return rec, nil
}

// Replace overwrites the data of an existing layout, updating its saved_at
// stamp. It returns ErrNotFound if the id does not exist.
func (s *Store) Replace(ctx context.Context, id string, data []byte) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE layouts SET data = ?, saved_at = ? WHERE id = ?
    `, string(data), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("update layout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns a layout by id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, data, saved_at FROM layouts WHERE id = ?
    `, id)
	return scanRecord(row)
}

// List returns all saved layouts, newest first, without their data payloads.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, '', saved_at FROM layouts ORDER BY saved_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		rec.Data = nil
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes a layout by id. It reports whether anything was removed so
// callers can treat "already gone" as benign.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete layout: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var data, savedAt string
	if err := row.Scan(&rec.ID, &rec.Name, &data, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Data = []byte(data)
	ts, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse saved_at: %w", err)
	}
	rec.SavedAt = ts
	return rec, nil
}
