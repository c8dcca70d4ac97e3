// Package discovery queries a table's physical column metadata from the
// warehouse and builds the normalized column index the matcher resolves
// against. A discovery result is a point-in-time snapshot: callers re-invoke
// Discover to refresh it.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// DiscoveredColumn is one physical column as reported by the warehouse.
type DiscoveredColumn struct {
	Name            string     `json:"name"`
	DataType        string     `json:"dataType"`
	Nullable        bool       `json:"nullable"`
	OrdinalPosition int        `json:"ordinalPosition"`
	Kind            ColumnKind `json:"inferredKind"`
}

// Snapshot is the result of one discovery call for a (database, schema,
// table) triple. Two snapshots never share state; resolving against one
// cannot interfere with another.
type Snapshot struct {
	ID           string
	Database     string
	Schema       string
	Table        string
	DiscoveredAt time.Time
	Columns      []DiscoveredColumn

	index *ColumnIndex
}

// Index returns the column index for this snapshot, building it on first use.
func (s *Snapshot) Index() *ColumnIndex {
	if s.index == nil {
		s.index = NewColumnIndex(s.Columns)
	}
	return s.index
}

// SameContext reports whether the snapshot was taken for the given context.
// Callers use this to discard stale results after a context change.
func (s *Snapshot) SameContext(database, schema, table string) bool {
	return strings.EqualFold(s.Database, database) &&
		strings.EqualFold(s.Schema, schema) &&
		strings.EqualFold(s.Table, table)
}

// DiscoveryError indicates the introspection query failed or returned an
// unexpected shape. Discovery still yields an empty snapshot so downstream
// matching degrades to "all fields missing" instead of crashing.
type DiscoveryError struct {
	Database string
	Schema   string
	Table    string
	Err      error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s.%s.%s: %v", e.Database, e.Schema, e.Table, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Discoverer issues schema-introspection queries through the executor.
type Discoverer struct {
	exec warehouse.Executor
	log  *logger.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(exec warehouse.Executor, log *logger.Logger) *Discoverer {
	return &Discoverer{exec: exec, log: log}
}

// Discover fetches column metadata for one table. An empty database or
// schema is a deliberate no-op (the caller may not have a target selected
// yet): it returns an empty snapshot without issuing a query and without
// error. A failed introspection query returns the empty snapshot together
// with a *DiscoveryError.
func (d *Discoverer) Discover(ctx context.Context, database, schema, table string) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:           uuid.NewString(),
		Database:     database,
		Schema:       schema,
		Table:        table,
		DiscoveredAt: time.Now().UTC(),
	}

	if database == "" || schema == "" {
		return snapshot, nil
	}

	query := fmt.Sprintf(`
		SELECT
			COLUMN_NAME,
			DATA_TYPE,
			IS_NULLABLE,
			ORDINAL_POSITION
		FROM %s.INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = '%s' AND TABLE_NAME = '%s'
		ORDER BY ORDINAL_POSITION`,
		warehouse.QuoteIdentifier(database),
		warehouse.EscapeLiteral(schema),
		warehouse.EscapeLiteral(table))

	result, err := d.exec.Execute(ctx, query)
	if err != nil {
		if d.log != nil {
			d.log.Warnf("column discovery failed for %s.%s.%s: %v", database, schema, table, err)
		}
		return snapshot, &DiscoveryError{Database: database, Schema: schema, Table: table, Err: err}
	}

	records, err := warehouse.NormalizeRows(result)
	if err != nil {
		return snapshot, &DiscoveryError{Database: database, Schema: schema, Table: table, Err: err}
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		name := rec.String("COLUMN_NAME")
		if name == "" {
			continue
		}
		upper := strings.ToUpper(name)
		if seen[upper] {
			continue
		}
		seen[upper] = true

		dataType := rec.String("DATA_TYPE")
		snapshot.Columns = append(snapshot.Columns, DiscoveredColumn{
			Name:            name,
			DataType:        dataType,
			Nullable:        rec.Bool("IS_NULLABLE"),
			OrdinalPosition: int(rec.Int("ORDINAL_POSITION")),
			Kind:            InferKind(name, dataType),
		})
	}

	if d.log != nil {
		d.log.Infof("discovered %d columns for %s.%s.%s", len(snapshot.Columns), database, schema, table)
	}

	return snapshot, nil
}
