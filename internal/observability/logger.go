// Package observability provides structured logging for backend sync calls.
//
// Every fetch, save and delete emits one entry: operation id, resource,
// HTTP method and URL, status, duration, outcome and error (if any).
package observability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcomes recorded in SyncLogEntry.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// SyncLogEntry contains the fields logged for one backend call.
type SyncLogEntry struct {
	// OperationID identifies the call. NewOperationID generates one.
	OperationID string

	// Resource is the resource key, e.g. "products".
	Resource string

	// Operation is "fetch", "save" or "delete".
	Operation string

	Method string
	URL    string

	// Status is the HTTP status, 0 when no response arrived.
	Status int

	// Duration must be non-negative.
	Duration time.Duration

	// Outcome is OutcomeSuccess or OutcomeError.
	Outcome string

	// Error is the user-facing message for failed calls.
	Error string
}

// NewOperationID returns a fresh random operation id.
func NewOperationID() string {
	return uuid.NewString()
}

// Validate checks that all required fields are present.
func (e *SyncLogEntry) Validate() error {
	if e.OperationID == "" {
		return fmt.Errorf("observability: operation_id is required")
	}
	if e.Resource == "" {
		return fmt.Errorf("observability: resource is required")
	}
	if e.Duration < 0 {
		return fmt.Errorf("observability: duration cannot be negative")
	}
	return nil
}

func (e *SyncLogEntry) failed() bool {
	return e.Error != "" || e.Outcome == OutcomeError
}

// SyncLogger is the interface for sync logging.
type SyncLogger interface {
	// LogSync records one backend call.
	LogSync(ctx context.Context, entry SyncLogEntry) error

	// Summary returns aggregated statistics.
	Summary() *Summary
}

// Summary aggregates logged calls.
type Summary struct {
	SuccessCount int            `json:"success_count"`
	FailureCount int            `json:"failure_count"`
	Resources    []ResourceStat `json:"resources"`
	TopFailures  []FailureStat  `json:"top_failures"`
}

// ResourceStat counts calls for one resource.
type ResourceStat struct {
	Resource string `json:"resource"`
	Calls    int    `json:"calls"`
	Failures int    `json:"failures"`
}

// FailureStat counts one failure message.
type FailureStat struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func emptySummary() *Summary {
	return &Summary{
		Resources:   []ResourceStat{},
		TopFailures: []FailureStat{},
	}
}

// jsonLogOutput is the structured format for JSON logs.
type jsonLogOutput struct {
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	OperationID string `json:"operation_id"`
	Resource    string `json:"resource"`
	Operation   string `json:"operation,omitempty"`
	Method      string `json:"method,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      int    `json:"status"`
	DurationMs  int64  `json:"duration_ms"`
	Outcome     string `json:"outcome,omitempty"`
	Error       string `json:"error,omitempty"`
}

func render(entry SyncLogEntry) ([]byte, error) {
	level := "info"
	if entry.failed() {
		level = "error"
	}
	data, err := json.Marshal(jsonLogOutput{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Level:       level,
		OperationID: entry.OperationID,
		Resource:    entry.Resource,
		Operation:   entry.Operation,
		Method:      entry.Method,
		URL:         entry.URL,
		Status:      entry.Status,
		DurationMs:  entry.Duration.Milliseconds(),
		Outcome:     entry.Outcome,
		Error:       entry.Error,
	})
	if err != nil {
		return nil, fmt.Errorf("observability: failed to marshal log: %w", err)
	}
	return append(data, '\n'), nil
}

// JSONLogger implements SyncLogger with JSON-lines output.
type JSONLogger struct {
	writer     io.Writer
	errorsOnly bool
	entries    []SyncLogEntry
	mu         sync.RWMutex
}

// NewJSONLogger creates a JSON logger writing to w. With level "error" only
// failed calls are written; every call is still counted in the summary.
func NewJSONLogger(w io.Writer, level string) *JSONLogger {
	return &JSONLogger{
		writer:     w,
		errorsOnly: level == "error",
		entries:    make([]SyncLogEntry, 0),
	}
}

// LogSync logs a call as one JSON line.
func (l *JSONLogger) LogSync(ctx context.Context, entry SyncLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)

	if l.errorsOnly && !entry.failed() {
		return nil
	}
	data, err := render(entry)
	if err != nil {
		return err
	}
	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("observability: failed to write log: %w", err)
	}
	return nil
}

// Summary aggregates the calls logged so far.
func (l *JSONLogger) Summary() *Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := emptySummary()
	perResource := make(map[string]*ResourceStat)
	failures := make(map[string]int)

	for _, entry := range l.entries {
		stat, ok := perResource[entry.Resource]
		if !ok {
			stat = &ResourceStat{Resource: entry.Resource}
			perResource[entry.Resource] = stat
		}
		stat.Calls++
		if entry.failed() {
			summary.FailureCount++
			stat.Failures++
			failures[entry.Error]++
		} else {
			summary.SuccessCount++
		}
	}

	for _, stat := range perResource {
		summary.Resources = append(summary.Resources, *stat)
	}
	sort.Slice(summary.Resources, func(i, j int) bool {
		return summary.Resources[i].Resource < summary.Resources[j].Resource
	})

	for msg, count := range failures {
		summary.TopFailures = append(summary.TopFailures, FailureStat{Message: msg, Count: count})
	}
	sort.Slice(summary.TopFailures, func(i, j int) bool {
		a, b := summary.TopFailures[i], summary.TopFailures[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Message < b.Message
	})
	if len(summary.TopFailures) > 5 {
		summary.TopFailures = summary.TopFailures[:5]
	}
	return summary
}

// NoopLogger discards all logs.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// LogSync does nothing and always succeeds.
func (l *NoopLogger) LogSync(ctx context.Context, entry SyncLogEntry) error {
	return nil
}

// Summary returns an empty summary.
func (l *NoopLogger) Summary() *Summary {
	return emptySummary()
}

// PersistentLogger implements SyncLogger on the sync_audit table.
type PersistentLogger struct {
	db     *sql.DB
	mu     sync.Mutex
	writer io.Writer
}

// NewPersistentLogger creates a logger that persists entries to db.
func NewPersistentLogger(db *sql.DB) (*PersistentLogger, error) {
	return NewPersistentLoggerWithWriter(db, nil)
}

// NewPersistentLoggerWithWriter creates a logger that persists to db and
// mirrors each entry to w as a JSON line.
func NewPersistentLoggerWithWriter(db *sql.DB, w io.Writer) (*PersistentLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("observability: database connection is required for persistent logging")
	}
	return &PersistentLogger{db: db, writer: w}, nil
}

// LogSync inserts entry into sync_audit.
func (l *PersistentLogger) LogSync(ctx context.Context, entry SyncLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	outcome := entry.Outcome
	if outcome == "" {
		outcome = OutcomeSuccess
		if entry.failed() {
			outcome = OutcomeError
		}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO sync_audit (
			operation_id, resource, operation, method, url,
			status, duration_ms, outcome, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		entry.OperationID,
		entry.Resource,
		nullableString(entry.Operation),
		nullableString(entry.Method),
		nullableString(entry.URL),
		entry.Status,
		entry.Duration.Milliseconds(),
		outcome,
		nullableString(entry.Error),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("observability: failed to persist audit entry: %w", err)
	}

	if l.writer != nil {
		if data, err := render(entry); err == nil {
			l.mu.Lock()
			l.writer.Write(data)
			l.mu.Unlock()
		}
	}
	return nil
}

// Summary aggregates the persisted entries. Query failures yield the
// partial summary; use Report to see them.
func (l *PersistentLogger) Summary() *Summary {
	summary, _ := l.Report(context.Background())
	return summary
}

// Report aggregates the persisted entries and returns the first query error.
func (l *PersistentLogger) Report(ctx context.Context) (*Summary, error) {
	summary := emptySummary()

	row := l.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN outcome = 'error' THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'error' THEN 1 ELSE 0 END), 0)
		FROM sync_audit
	`)
	if err := row.Scan(&summary.SuccessCount, &summary.FailureCount); err != nil {
		return summary, fmt.Errorf("failed to count audit entries: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT resource, COUNT(*), COALESCE(SUM(CASE WHEN outcome = 'error' THEN 1 ELSE 0 END), 0)
		FROM sync_audit
		GROUP BY resource
		ORDER BY resource
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query resource stats: %w", err)
	}
	for rows.Next() {
		var stat ResourceStat
		if err := rows.Scan(&stat.Resource, &stat.Calls, &stat.Failures); err != nil {
			rows.Close()
			return summary, fmt.Errorf("failed to scan resource stats: %w", err)
		}
		summary.Resources = append(summary.Resources, stat)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return summary, fmt.Errorf("failed to read resource stats: %w", err)
	}

	rows, err = l.db.QueryContext(ctx, `
		SELECT error_message, COUNT(*) AS cnt
		FROM sync_audit
		WHERE error_message IS NOT NULL AND error_message != ''
		GROUP BY error_message
		ORDER BY cnt DESC, error_message
		LIMIT 5
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query top failures: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var stat FailureStat
		if err := rows.Scan(&stat.Message, &stat.Count); err != nil {
			return summary, fmt.Errorf("failed to scan top failures: %w", err)
		}
		summary.TopFailures = append(summary.TopFailures, stat)
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("failed to read top failures: %w", err)
	}

	return summary, nil
}

// nullableString converts empty strings to nil for SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
