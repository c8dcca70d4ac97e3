package matching

import (
	"sort"
	"strings"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
)

// Stats summarizes a batch match run. Invariant: Matched + Unmatched == Total.
type Stats struct {
	Total            int `json:"total"`
	Matched          int `json:"matched"`
	HighConfidence   int `json:"highConfidence"`
	MediumConfidence int `json:"mediumConfidence"`
	LowConfidence    int `json:"lowConfidence"`
	Unmatched        int `json:"unmatched"`
}

// BatchResult is the outcome of matching every catalog field against one
// index.
type BatchResult struct {
	Results []MatchResult `json:"results"`
	Stats   Stats         `json:"stats"`

	// UnmatchedColumns lists discovered columns no field claimed, in
	// discovery order. They feed the reverse "what might this column be"
	// suggestion flow.
	UnmatchedColumns []string `json:"unmatchedColumns"`
}

// MatchAll resolves every field in the catalog against the index.
func MatchAll(c *catalog.Catalog, ix *discovery.ColumnIndex) BatchResult {
	fields := c.Fields()
	result := BatchResult{
		Results: make([]MatchResult, 0, len(fields)),
	}

	claimed := make(map[string]bool)

	for i := range fields {
		m := Match(&fields[i], ix)
		result.Results = append(result.Results, m)

		result.Stats.Total++
		if !m.Matched {
			result.Stats.Unmatched++
			continue
		}
		result.Stats.Matched++
		claimed[strings.ToUpper(m.MatchedColumn)] = true

		switch {
		case m.Confidence >= HighConfidenceThreshold:
			result.Stats.HighConfidence++
		case m.Confidence >= ConfidenceFuzzyNormalized:
			result.Stats.MediumConfidence++
		default:
			result.Stats.LowConfidence++
		}
	}

	for _, name := range ix.Names() {
		if !claimed[strings.ToUpper(name)] {
			result.UnmatchedColumns = append(result.UnmatchedColumns, name)
		}
	}

	return result
}

// Suggestion pairs a field with the confidence it would match a column at.
type Suggestion struct {
	FieldID    string  `json:"fieldId"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}

// SuggestFields answers the reverse question: given one discovered column,
// which catalog fields could it be? It runs the same tiers over a
// single-column index and returns hits sorted by confidence descending,
// then by catalog order for equal confidence.
func SuggestFields(column discovery.DiscoveredColumn, c *catalog.Catalog) []Suggestion {
	ix := discovery.NewColumnIndex([]discovery.DiscoveredColumn{column})

	var suggestions []Suggestion
	for _, f := range c.Fields() {
		m := MatchCandidates(f.CanonicalColumn, f.AlternateNames, ix)
		if m.Matched {
			suggestions = append(suggestions, Suggestion{
				FieldID:    f.ID,
				Confidence: m.Confidence,
				Method:     m.Method,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	return suggestions
}
