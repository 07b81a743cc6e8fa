// Package execlog persists template execution envelopes to SQLite for audit
// and history listing. It stores results only; templates themselves are
// never persisted.
package execlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/graphfoundry/queryforge/internal/template"
)

// Store errors.
var (
	ErrInvalidRecord = errors.New("invalid execution record")
	ErrStoreClosed   = errors.New("execution log store is closed")
)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id TEXT PRIMARY KEY,
	template_name TEXT NOT NULL,
	query TEXT NOT NULL,
	parameters_json TEXT,
	valid INTEGER NOT NULL,
	errors_json TEXT,
	warnings_json TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_template ON executions(template_name, created_at);
`

// Record is one persisted execution envelope.
type Record struct {
	ID           string
	TemplateName string
	Query        string
	Parameters   map[string]any
	Valid        bool
	Errors       []string
	Warnings     []string
	CreatedAt    time.Time
}

// Store writes and reads execution records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the execution log database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("execution log path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open execution log %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate execution log: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Append persists one execution result. Invalid executions are recorded too;
// their query column is empty and the errors column carries the diagnostics.
func (s *Store) Append(ctx context.Context, res *template.ExecutionResult) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	if res == nil || res.Template == "" {
		return ErrInvalidRecord
	}

	id := res.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := res.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	paramsJSON, err := marshalNullable(res.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	errorsJSON, err := marshalNullable(res.Validation.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	warningsJSON, err := marshalNullable(res.Validation.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO executions (id, template_name, query, parameters_json, valid, errors_json, warnings_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Template, res.Query, paramsJSON, boolInt(res.Validation.Valid),
		errorsJSON, warningsJSON, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert execution record: %w", err)
	}
	return nil
}

// Recent returns the newest records across all templates.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	return s.query(ctx, `
		SELECT id, template_name, query, parameters_json, valid, errors_json, warnings_json, created_at
		FROM executions ORDER BY created_at DESC LIMIT ?`, clampLimit(limit))
}

// ByTemplate returns the newest records for one template.
func (s *Store) ByTemplate(ctx context.Context, name string, limit int) ([]*Record, error) {
	return s.query(ctx, `
		SELECT id, template_name, query, parameters_json, valid, errors_json, warnings_json, created_at
		FROM executions WHERE template_name = ? ORDER BY created_at DESC LIMIT ?`,
		name, clampLimit(limit))
}

// Count returns the total number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrStoreClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM executions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count execution records: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]*Record, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution records: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		record       Record
		paramsJSON   sql.NullString
		validInt     int
		errorsJSON   sql.NullString
		warningsJSON sql.NullString
		createdAt    string
	)
	if err := rows.Scan(&record.ID, &record.TemplateName, &record.Query, &paramsJSON,
		&validInt, &errorsJSON, &warningsJSON, &createdAt); err != nil {
		return nil, fmt.Errorf("scan execution record: %w", err)
	}

	record.Valid = validInt != 0
	if paramsJSON.Valid {
		if err := json.Unmarshal([]byte(paramsJSON.String), &record.Parameters); err != nil {
			return nil, fmt.Errorf("unmarshal parameters: %w", err)
		}
	}
	if errorsJSON.Valid {
		if err := json.Unmarshal([]byte(errorsJSON.String), &record.Errors); err != nil {
			return nil, fmt.Errorf("unmarshal errors: %w", err)
		}
	}
	if warningsJSON.Valid {
		if err := json.Unmarshal([]byte(warningsJSON.String), &record.Warnings); err != nil {
			return nil, fmt.Errorf("unmarshal warnings: %w", err)
		}
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse execution timestamp: %w", err)
	}
	record.CreatedAt = ts

	return &record, nil
}

func marshalNullable(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
