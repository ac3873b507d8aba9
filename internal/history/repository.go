// Package history persists the outcome of each source load to a local
// SQLite database so past runs can be inspected with "sapmon history".
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/sapmon/internal/database"
	"nathanbeddoewebdev/sapmon/internal/retry"
)

// Repository defines the persistence interface for load entries.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListBySource(source string, limit int) ([]Entry, error)
	ListByRun(runID string) ([]Entry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS load_history (
            id           INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp    TEXT    NOT NULL,
            run_id       TEXT    NOT NULL DEFAULT '',
            command      TEXT    NOT NULL DEFAULT '',
            source       TEXT    NOT NULL,
            path         TEXT    NOT NULL DEFAULT '',
            fingerprint  TEXT    NOT NULL DEFAULT '',
            rows_in      INTEGER NOT NULL DEFAULT 0,
            rows_out     INTEGER NOT NULL DEFAULT 0,
            outcome      TEXT    NOT NULL DEFAULT '',
            detail       TEXT    NOT NULL DEFAULT '',
            duration_ms  INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_load_history_timestamp ON load_history(timestamp);
        CREATE INDEX IF NOT EXISTS idx_load_history_source ON load_history(source);
        CREATE INDEX IF NOT EXISTS idx_load_history_run ON load_history(run_id);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new entry, filling in the timestamp when unset.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	// Another sapmon process may hold the write lock briefly.
	result, err := retry.Value(context.Background(), retry.SQLiteWrite, func() (sql.Result, error) {
		return r.db.Exec(`
        INSERT INTO load_history (timestamp, run_id, command, source, path, fingerprint, rows_in, rows_out, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.RunID, entry.Command, entry.Source, entry.Path, entry.Fingerprint,
			entry.RowsIn, entry.RowsOut, entry.Outcome, entry.Detail, entry.DurationMs,
		)
	})
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

const selectColumns = `
        SELECT id, timestamp, run_id, command, source, path, fingerprint, rows_in, rows_out,
               outcome, detail, duration_ms
        FROM load_history`

// List returns the most recent n entries.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListBySource returns the most recent n entries for a source.
func (r *SQLiteRepository) ListBySource(source string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` WHERE source = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, source, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByRun returns every entry of one run in insertion order.
func (r *SQLiteRepository) ListByRun(runID string) ([]Entry, error) {
	rows, err := r.db.Query(selectColumns+` WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := retry.Value(context.Background(), retry.SQLiteWrite, func() (sql.Result, error) {
		return r.db.Exec(`DELETE FROM load_history WHERE timestamp < ?`, cutoff)
	})
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.RunID, &entry.Command, &entry.Source, &entry.Path, &entry.Fingerprint,
			&entry.RowsIn, &entry.RowsOut, &entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
