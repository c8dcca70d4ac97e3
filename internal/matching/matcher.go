// Package matching resolves semantic catalog fields (and arbitrary template
// tokens) to physical warehouse columns using a tiered strategy with fixed
// confidence scoring.
package matching

import (
	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
)

// Method identifies which tier produced a match.
type Method string

const (
	MethodExactCanonical  Method = "exact_canonical"
	MethodExactAlternate  Method = "exact_alternate"
	MethodFuzzyNormalized Method = "fuzzy_normalized"
	MethodFuzzyCompact    Method = "fuzzy_compact"
	MethodNone            Method = "none"
)

// Fixed confidence tiers. These are policy constants, not learned values.
const (
	ConfidenceExactCanonical  = 1.0
	ConfidenceExactAlternate  = 0.9
	ConfidenceFuzzyNormalized = 0.7
	ConfidenceFuzzyCompact    = 0.5

	// HighConfidenceThreshold is the cut line downstream consumers use to
	// decide whether to silently accept a match or flag it for review.
	HighConfidenceThreshold = 0.8
)

// MatchResult is the outcome of resolving one field or token.
// Invariants: Matched iff Confidence > 0 and MatchedColumn != "";
// Method == MethodNone iff !Matched.
type MatchResult struct {
	FieldID       string  `json:"fieldId"`
	Matched       bool    `json:"matched"`
	MatchedColumn string  `json:"matchedColumn,omitempty"`
	Confidence    float64 `json:"confidence"`
	Method        Method  `json:"method"`
}

// HighConfidence reports whether the match clears the review cut line.
func (r MatchResult) HighConfidence() bool {
	return r.Matched && r.Confidence >= HighConfidenceThreshold
}

// Match resolves a catalog field against a column index.
func Match(field *catalog.FieldDefinition, ix *discovery.ColumnIndex) MatchResult {
	result := MatchCandidates(field.CanonicalColumn, field.AlternateNames, ix)
	result.FieldID = field.ID
	return result
}

// MatchCandidates resolves a canonical name plus ordered alternates against a
// column index. The tiers are strictly ordered and the first hit wins:
//
//  1. exact canonical (case-insensitive)
//  2. exact alternates, in declared order
//  3. tiers 1-2 retried with camel-case names rewritten to snake-case
//  4. compact comparison with all separators stripped from both sides
//  5. no match
func MatchCandidates(canonical string, alternates []string, ix *discovery.ColumnIndex) MatchResult {
	// Tier 1: exact canonical.
	if canonical != "" {
		if column, ok := ix.LookupExact(foldIdentifier(canonical)); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceExactCanonical,
				Method:        MethodExactCanonical,
			}
		}
	}

	// Tier 2: exact alternates, declared order.
	for _, alt := range alternates {
		if column, ok := ix.LookupExact(foldIdentifier(alt)); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceExactAlternate,
				Method:        MethodExactAlternate,
			}
		}
	}

	// Tier 3: normalized fuzzy. Rewrite camel-case candidates to snake-case
	// and retry the exact lookups.
	if canonical != "" {
		if column, ok := ix.LookupExact(camelToSnake(foldIdentifier(canonical))); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceFuzzyNormalized,
				Method:        MethodFuzzyNormalized,
			}
		}
	}
	for _, alt := range alternates {
		if column, ok := ix.LookupExact(camelToSnake(foldIdentifier(alt))); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceFuzzyNormalized,
				Method:        MethodFuzzyNormalized,
			}
		}
	}

	// Tier 4: compact fuzzy, separators stripped from both sides.
	if canonical != "" {
		if column, ok := ix.LookupCompact(foldIdentifier(canonical)); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceFuzzyCompact,
				Method:        MethodFuzzyCompact,
			}
		}
	}
	for _, alt := range alternates {
		if column, ok := ix.LookupCompact(foldIdentifier(alt)); ok {
			return MatchResult{
				Matched:       true,
				MatchedColumn: column,
				Confidence:    ConfidenceFuzzyCompact,
				Method:        MethodFuzzyCompact,
			}
		}
	}

	return MatchResult{Method: MethodNone}
}
