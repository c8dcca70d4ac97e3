package coverage

import (
	"math"

	"github.com/fieldline/fieldline/internal/warehouse"
)

// FieldCoverage is the population measurement for one field.
type FieldCoverage struct {
	Count      int64   `json:"count"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// percentage computes count/total*100 rounded to one decimal place, clamped
// to [0, 100]. A zero total yields 0, never NaN.
func percentage(count, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := math.Round(float64(count)/float64(total)*1000) / 10
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ComputeCoverage turns the raw aggregate row into per-field coverage. The
// row's TOTAL_COUNT column carries the table total; each field's count lives
// under its field-id alias.
func ComputeCoverage(row warehouse.Record, matched []MatchedField) map[string]FieldCoverage {
	total := row.Int(TotalCountAlias)

	out := make(map[string]FieldCoverage, len(matched))
	for _, f := range matched {
		count := row.Int(f.FieldID)
		out[f.FieldID] = FieldCoverage{
			Count:      count,
			Total:      total,
			Percentage: percentage(count, total),
		}
	}
	return out
}
