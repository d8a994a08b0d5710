package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore is a persistent Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path and
// initialises the schema. Use ":memory:" for an in-memory SQLite database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open sqlite: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS parlfetch_checkpoints (
			task       TEXT PRIMARY KEY,
			cursor     TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("checkpoint: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the checkpoint for the given task, if one was saved.
func (s *SQLiteStore) Load(ctx context.Context, task string) (Checkpoint, bool, error) {
	var cursor string
	var updated int64

	err := s.db.QueryRowContext(ctx,
		`SELECT cursor, updated_at FROM parlfetch_checkpoints WHERE task = ?`, task,
	).Scan(&cursor, &updated)

	if err == sql.ErrNoRows {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, err
	}

	return Checkpoint{
		Cursor:    cursor,
		UpdatedAt: time.Unix(updated, 0).UTC(),
	}, true, nil
}

// Save stores the checkpoint for the given task, replacing any previous one.
func (s *SQLiteStore) Save(ctx context.Context, task string, cp Checkpoint) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parlfetch_checkpoints (task, cursor, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(task) DO UPDATE SET cursor = excluded.cursor, updated_at = excluded.updated_at`,
		task, cp.Cursor, cp.UpdatedAt.Unix(),
	)
	return err
}

// Clear removes the checkpoint for the given task.
func (s *SQLiteStore) Clear(ctx context.Context, task string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM parlfetch_checkpoints WHERE task = ?`, task)
	return err
}

// Close closes the underlying SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
