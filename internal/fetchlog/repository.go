package fetchlog

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/tint/internal/database"
)

// Repository defines the persistence interface for fetch history.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListByVariant(variant string, limit int) ([]Entry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// timestampLayout is fixed width so timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// Open creates or opens the fetch history at the default database path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("fetchlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fetchlog: %w", err)
	}

	// SQLite allows a single writer; concurrent checks share this handle.
	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS fetch_log (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            variant     TEXT    NOT NULL DEFAULT '',
            url         TEXT    NOT NULL DEFAULT '',
            outcome     TEXT    NOT NULL DEFAULT '',
            kind        TEXT    NOT NULL DEFAULT '',
            status_code INTEGER NOT NULL DEFAULT 0,
            message     TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_fetch_log_timestamp ON fetch_log(timestamp);
        CREATE INDEX IF NOT EXISTS idx_fetch_log_variant ON fetch_log(variant);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("fetchlog: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new entry, filling in its ID and, if unset, its timestamp.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO fetch_log (timestamp, variant, url, outcome, kind, status_code, message, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(timestampLayout), entry.Variant, entry.URL, entry.Outcome,
		entry.Kind, entry.StatusCode, entry.Message, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("fetchlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("fetchlog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries, newest first.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, variant, url, outcome, kind, status_code, message, duration_ms
        FROM fetch_log ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetchlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByVariant returns the most recent entries for one variant.
func (r *SQLiteRepository) ListByVariant(variant string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, variant, url, outcome, kind, status_code, message, duration_ms
        FROM fetch_log WHERE variant = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, variant, limit)
	if err != nil {
		return nil, fmt.Errorf("fetchlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(timestampLayout)
	result, err := r.db.Exec(`DELETE FROM fetch_log WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("fetchlog: delete failed: %w", err)
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
			&entry.ID, &timestampStr, &entry.Variant, &entry.URL, &entry.Outcome,
			&entry.Kind, &entry.StatusCode, &entry.Message, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("fetchlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(timestampLayout, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Durations returns the elapsed milliseconds of each entry in chronological
// order, the shape sparkline charts expect.
func Durations(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = float64(e.DurationMs)
	}
	return out
}
