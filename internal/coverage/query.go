// Package coverage builds and evaluates the single aggregate query that
// measures how populated each matched field is in the primary table.
package coverage

import (
	"fmt"
	"strings"

	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/warehouse"
)

// TotalCountAlias is the alias of the row-count aggregate in the generated
// query. Field aliases are the quoted field ids, so a bare identifier here
// cannot collide with them.
const TotalCountAlias = "TOTAL_COUNT"

// MatchedField is the slice of a match result the coverage engine needs: one
// field resolved to one physical column of a known kind.
type MatchedField struct {
	FieldID string               `json:"fieldId"`
	Column  string               `json:"column"`
	Kind    discovery.ColumnKind `json:"kind"`
}

// FromBatch extracts the matched fields from a batch match run, carrying the
// inferred kind over from the index.
func FromBatch(batch matching.BatchResult, ix *discovery.ColumnIndex) []MatchedField {
	matched := make([]MatchedField, 0, batch.Stats.Matched)
	for _, r := range batch.Results {
		if !r.Matched {
			continue
		}
		kind := discovery.KindString
		if col, ok := ix.Column(r.MatchedColumn); ok {
			kind = col.Kind
		}
		matched = append(matched, MatchedField{
			FieldID: r.FieldID,
			Column:  r.MatchedColumn,
			Kind:    kind,
		})
	}
	return matched
}

// populationPredicate returns the condition under which a column counts as
// populated. Arrays must be non-empty, booleans must be true, everything else
// must cast to a non-blank string.
func populationPredicate(column string, kind discovery.ColumnKind) string {
	quoted := warehouse.QuoteIdentifier(column)
	switch kind {
	case discovery.KindArray:
		return fmt.Sprintf("%s IS NOT NULL AND ARRAY_SIZE(%s) > 0", quoted, quoted)
	case discovery.KindBoolean:
		return fmt.Sprintf("%s = TRUE", quoted)
	default:
		return fmt.Sprintf("%s IS NOT NULL AND CAST(%s AS VARCHAR) <> ''", quoted, quoted)
	}
}

// BuildCoverageQuery builds one aggregate SELECT computing a population count
// per matched field plus the table row count. The second return is false when
// there are zero matched fields: coverage is unavailable, which is not an
// error.
func BuildCoverageQuery(matched []MatchedField, tableRef, filter string) (string, bool) {
	if len(matched) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("SELECT\n")
	fmt.Fprintf(&b, "    COUNT(*) AS %s", TotalCountAlias)
	for _, f := range matched {
		fmt.Fprintf(&b, ",\n    COUNT_IF(%s) AS \"%s\"",
			populationPredicate(f.Column, f.Kind), f.FieldID)
	}
	fmt.Fprintf(&b, "\nFROM %s", tableRef)
	if filter != "" {
		fmt.Fprintf(&b, "\nWHERE %s", filter)
	}

	return b.String(), true
}
