package coverage

import (
	"context"
	"fmt"

	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// Report is the outcome of one coverage run. Available is false when no
// fields were matched and no query was issued.
type Report struct {
	Available bool                     `json:"available"`
	SQL       string                   `json:"sql,omitempty"`
	Total     int64                    `json:"total"`
	Fields    map[string]FieldCoverage `json:"fields,omitempty"`
}

// Engine issues coverage aggregates through the executor.
type Engine struct {
	exec warehouse.Executor
	log  *logger.Logger
}

// NewEngine creates a coverage engine.
func NewEngine(exec warehouse.Executor, log *logger.Logger) *Engine {
	return &Engine{exec: exec, log: log}
}

// Run builds the aggregate for the matched fields, executes it, and computes
// per-field coverage from the single result row. Zero matched fields yields
// an unavailable report without touching the warehouse.
func (e *Engine) Run(ctx context.Context, matched []MatchedField, tableRef, filter string) (*Report, error) {
	query, ok := BuildCoverageQuery(matched, tableRef, filter)
	if !ok {
		return &Report{Available: false}, nil
	}

	result, err := e.exec.Execute(ctx, query)
	if err != nil {
		return nil, warehouse.NewQueryError("coverage aggregate", err)
	}

	records, err := warehouse.NormalizeRows(result)
	if err != nil {
		return nil, warehouse.NewQueryError("coverage aggregate", err)
	}
	if len(records) == 0 {
		return nil, warehouse.NewQueryError("coverage aggregate",
			fmt.Errorf("expected one aggregate row, got none"))
	}

	row := records[0]
	report := &Report{
		Available: true,
		SQL:       query,
		Total:     row.Int(TotalCountAlias),
		Fields:    ComputeCoverage(row, matched),
	}

	if e.log != nil {
		e.log.Infof("coverage computed for %d fields over %d rows in %s",
			len(matched), report.Total, tableRef)
	}

	return report, nil
}
