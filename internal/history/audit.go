package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/internal/warehouse"
)

// AuditedExecutor wraps an executor and records every statement it forwards.
// Recording is best-effort: a history failure never fails the statement.
type AuditedExecutor struct {
	exec  warehouse.Executor
	store *Store

	database  string
	schema    string
	warehouse string
}

// NewAuditedExecutor wraps exec so every Execute call lands in the store,
// tagged with the given context.
func NewAuditedExecutor(exec warehouse.Executor, store *Store, database, schema, wh string) *AuditedExecutor {
	return &AuditedExecutor{
		exec:      exec,
		store:     store,
		database:  database,
		schema:    schema,
		warehouse: wh,
	}
}

// Execute forwards the statement and records its outcome.
func (a *AuditedExecutor) Execute(ctx context.Context, sql string) (*warehouse.Result, error) {
	startedAt := time.Now().UTC()
	result, err := a.exec.Execute(ctx, sql)
	completedAt := time.Now().UTC()

	entry := Entry{
		QueryID:     uuid.NewString(),
		SQL:         sql,
		Database:    a.database,
		Schema:      a.schema,
		Warehouse:   a.warehouse,
		Status:      StatusSuccess,
		RowCount:    int64(result.RowCount()),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMS:  completedAt.Sub(startedAt).Milliseconds(),
	}
	if err != nil {
		entry.Status = StatusFailed
		entry.RowCount = 0
		entry.ErrorMessage = err.Error()
	}
	// Best-effort; Add already reports its own failure.
	_ = a.store.Add(entry)

	return result, err
}
