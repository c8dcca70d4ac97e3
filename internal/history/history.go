// Package history persists an audit trail of executed statements in a local
// SQLite database. SQL text is redacted before it is written: string literals
// routinely carry emails and names, and the history file outlives the
// session.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldline/fieldline/internal/warehouse"
)

// Entry is one recorded statement execution.
type Entry struct {
	QueryID      string    `json:"queryId"`
	SQL          string    `json:"sql"`
	Database     string    `json:"database,omitempty"`
	Schema       string    `json:"schema,omitempty"`
	Warehouse    string    `json:"warehouse,omitempty"`
	Status       string    `json:"status"`
	RowCount     int64     `json:"rowCount"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	StartedAt    time.Time `json:"startedAt"`
	CompletedAt  time.Time `json:"completedAt"`
	DurationMS   int64     `json:"durationMs"`
}

// Statement statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Store is the SQLite-backed history store.
type Store struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS query_history (
	query_id      TEXT PRIMARY KEY,
	sql_text      TEXT NOT NULL,
	database_name TEXT,
	schema_name   TEXT,
	warehouse     TEXT,
	status        TEXT NOT NULL,
	row_count     INTEGER,
	error_message TEXT,
	started_at    TIMESTAMP NOT NULL,
	completed_at  TIMESTAMP NOT NULL,
	duration_ms   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_query_history_started_at ON query_history(started_at);
CREATE INDEX IF NOT EXISTS idx_query_history_status ON query_history(status);
`

// Open opens (and if needed initializes) a history store at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}
	// A single connection keeps an in-memory store coherent and avoids
	// writer contention on file stores.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records one execution. The statement text is redacted before persisting.
func (s *Store) Add(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO query_history (
			query_id, sql_text, database_name, schema_name, warehouse,
			status, row_count, error_message, started_at, completed_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.QueryID,
		warehouse.RedactLiterals(e.SQL),
		e.Database,
		e.Schema,
		e.Warehouse,
		e.Status,
		e.RowCount,
		e.ErrorMessage,
		e.StartedAt.UTC(),
		e.CompletedAt.UTC(),
		e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to record query history: %w", err)
	}
	return nil
}

// List returns entries newest first, with paging and an optional status
// filter, plus the total count matching the filter.
func (s *Store) List(limit, offset int, status string) ([]Entry, int64, error) {
	if limit <= 0 {
		limit = 50
	}

	where := ""
	args := []any{}
	if status != "" {
		where = "WHERE status = ?"
		args = append(args, status)
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM query_history "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count query history: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT query_id, sql_text, database_name, schema_name, warehouse,
		       status, row_count, error_message, started_at, completed_at, duration_ms
		FROM query_history %s
		ORDER BY started_at DESC, query_id DESC
		LIMIT ? OFFSET ?`, where),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var database, schema, wh, errMsg sql.NullString
		var rowCount, duration sql.NullInt64
		if err := rows.Scan(&e.QueryID, &e.SQL, &database, &schema, &wh,
			&e.Status, &rowCount, &errMsg, &e.StartedAt, &e.CompletedAt, &duration); err != nil {
			return nil, 0, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Database = database.String
		e.Schema = schema.String
		e.Warehouse = wh.String
		e.ErrorMessage = errMsg.String
		e.RowCount = rowCount.Int64
		e.DurationMS = duration.Int64
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM query_history"); err != nil {
		return fmt.Errorf("failed to clear query history: %w", err)
	}
	return nil
}
