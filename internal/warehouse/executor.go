// Package warehouse defines the query-execution boundary to the analytical
// warehouse and the row-shape normalization applied at that boundary.
package warehouse

import (
	"context"
	"fmt"
)

// Result is the canonical query result shape: ordered column names plus rows
// of values aligned to those columns.
type Result struct {
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of rows in the result.
func (r *Result) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Executor runs SQL against the warehouse. The resolver core only ever issues
// read-only SELECT statements through this interface.
type Executor interface {
	Execute(ctx context.Context, sql string) (*Result, error)
}

// QueryError carries the executor's failure alongside the caller-supplied
// context describing what the statement was for.
type QueryError struct {
	Context string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps an executor failure with caller context.
func NewQueryError(context string, err error) *QueryError {
	return &QueryError{Context: context, Err: err}
}
