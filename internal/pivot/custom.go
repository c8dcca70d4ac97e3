package pivot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/warehouse"
)

// BuildCustomPivotSQL assembles a pivot query programmatically from
// dimension and measure ids instead of a pre-written template. Dimensions
// occupy the leading SELECT ordinals in declaration order and drive the
// GROUP BY/ORDER BY position lists; measures follow and are never grouped.
// Dimensions and measures whose columns cannot be resolved are omitted from
// the SELECT list and reported in MissingColumns.
func (r *Resolver) BuildCustomPivotSQL(dimensionIDs, measureIDs []string, tableRef, whereClause string, ix *discovery.ColumnIndex) (ResolvedPivot, error) {
	var out ResolvedPivot
	var selects []string
	dimensionCount := 0

	for _, id := range dimensionIDs {
		dim, ok := r.lib.Dimension(id)
		if !ok {
			return out, fmt.Errorf("unknown pivot dimension %q", id)
		}

		m := matching.MatchCandidates(dim.Column, dim.Alternates, ix)
		if !m.Matched {
			out.MissingColumns = append(out.MissingColumns, dim.Column)
			continue
		}
		if !strings.EqualFold(m.MatchedColumn, dim.Column) {
			out.Alternates = append(out.Alternates, AlternateUse{
				Token:             dim.Column,
				UsedAlternateName: m.MatchedColumn,
			})
		}

		expr := dim.Expression(warehouse.QuoteIdentifier(m.MatchedColumn))
		selects = append(selects, fmt.Sprintf("%s AS \"%s\"", expr, dim.ID))
		dimensionCount++
	}

	measureCount := 0
	for _, id := range measureIDs {
		measure, ok := r.lib.Measure(id)
		if !ok {
			return out, fmt.Errorf("unknown pivot measure %q", id)
		}

		column := ""
		if measure.Column != "" {
			m := matching.MatchCandidates(measure.Column, measure.Alternates, ix)
			if !m.Matched {
				out.MissingColumns = append(out.MissingColumns, measure.Column)
				continue
			}
			if !strings.EqualFold(m.MatchedColumn, measure.Column) {
				out.Alternates = append(out.Alternates, AlternateUse{
					Token:             measure.Column,
					UsedAlternateName: m.MatchedColumn,
				})
			}
			column = warehouse.QuoteIdentifier(m.MatchedColumn)
		}

		selects = append(selects, fmt.Sprintf("%s AS \"%s\"", measure.Expression(column), measure.ID))
		measureCount++
	}

	if measureCount == 0 {
		selects = append(selects, `COUNT(*) AS "record_count"`)
	}
	if len(selects) == 0 {
		return out, fmt.Errorf("custom pivot has no resolvable dimensions or measures")
	}

	var b strings.Builder
	b.WriteString("SELECT\n    ")
	b.WriteString(strings.Join(selects, ",\n    "))
	fmt.Fprintf(&b, "\nFROM %s", tableRef)
	if whereClause != "" {
		fmt.Fprintf(&b, "\nWHERE %s", whereClause)
	}
	if dimensionCount > 0 {
		ordinals := make([]string, dimensionCount)
		for i := range ordinals {
			ordinals[i] = strconv.Itoa(i + 1)
		}
		fmt.Fprintf(&b, "\nGROUP BY %s", strings.Join(ordinals, ", "))
		fmt.Fprintf(&b, "\nORDER BY %s", strings.Join(ordinals, ", "))
	}

	out.SQL = b.String()
	return out, nil
}
