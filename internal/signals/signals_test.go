package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/matching"
)

func signalCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.FieldDefinition{
		{
			ID: "owner_users", CanonicalColumn: "OWNER_USERS",
			SignalContributions: []catalog.SignalContribution{
				{Signal: catalog.SignalOwnership, Weight: 0.6, Required: true},
			},
		},
		{
			ID: "owner_groups", CanonicalColumn: "OWNER_GROUPS",
			SignalContributions: []catalog.SignalContribution{
				{Signal: catalog.SignalOwnership, Weight: 0.4},
			},
		},
		{
			ID: "has_lineage", CanonicalColumn: "HAS_LINEAGE",
			SignalContributions: []catalog.SignalContribution{
				{Signal: catalog.SignalLineage, Weight: 1.0},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func batchFor(results ...matching.MatchResult) matching.BatchResult {
	b := matching.BatchResult{Results: results}
	for _, r := range results {
		b.Stats.Total++
		if r.Matched {
			b.Stats.Matched++
		} else {
			b.Stats.Unmatched++
		}
	}
	return b
}

func TestComputeAvailabilityPartialMatch(t *testing.T) {
	c := signalCatalog(t)
	batch := batchFor(
		matching.MatchResult{FieldID: "owner_users", Matched: true, MatchedColumn: "OWNER_USERS", Confidence: 1.0},
		matching.MatchResult{FieldID: "owner_groups", Matched: false},
		matching.MatchResult{FieldID: "has_lineage", Matched: false},
	)

	availability := ComputeAvailability(c, batch)
	require.Len(t, availability, 2)

	ownership := availability[catalog.SignalOwnership]
	// One of two contributors matched: the signal is evaluable anyway.
	assert.True(t, ownership.CanEvaluate)
	require.Len(t, ownership.Fields, 1)
	assert.Equal(t, "owner_users", ownership.Fields[0].FieldID)
	assert.Equal(t, "OWNER_USERS", ownership.Fields[0].Column)
	assert.InDelta(t, 1.0, ownership.TotalWeight, 1e-9)
	assert.InDelta(t, 0.6, ownership.MatchedWeight, 1e-9)

	lineage := availability[catalog.SignalLineage]
	assert.False(t, lineage.CanEvaluate)
	assert.Empty(t, lineage.Fields)
	assert.InDelta(t, 1.0, lineage.TotalWeight, 1e-9)
	assert.Zero(t, lineage.MatchedWeight)
}

func TestComputeAvailabilityFullMatch(t *testing.T) {
	c := signalCatalog(t)
	batch := batchFor(
		matching.MatchResult{FieldID: "owner_users", Matched: true, MatchedColumn: "OWNERUSERS", Confidence: 0.5},
		matching.MatchResult{FieldID: "owner_groups", Matched: true, MatchedColumn: "OWNER_GROUPS", Confidence: 1.0},
		matching.MatchResult{FieldID: "has_lineage", Matched: true, MatchedColumn: "HAS_LINEAGE", Confidence: 1.0},
	)

	availability := ComputeAvailability(c, batch)

	ownership := availability[catalog.SignalOwnership]
	require.Len(t, ownership.Fields, 2)
	assert.InDelta(t, ownership.TotalWeight, ownership.MatchedWeight, 1e-9)

	assert.ElementsMatch(t,
		[]Signal{catalog.SignalLineage, catalog.SignalOwnership},
		EvaluableSignals(availability))
}

func TestComputeAvailabilityNothingMatched(t *testing.T) {
	c := signalCatalog(t)
	batch := batchFor(
		matching.MatchResult{FieldID: "owner_users", Matched: false},
		matching.MatchResult{FieldID: "owner_groups", Matched: false},
		matching.MatchResult{FieldID: "has_lineage", Matched: false},
	)

	availability := ComputeAvailability(c, batch)
	for _, a := range availability {
		assert.False(t, a.CanEvaluate)
	}
	assert.Empty(t, EvaluableSignals(availability))
}

func TestComputeAvailabilityBuiltinCatalog(t *testing.T) {
	c := catalog.Builtin()

	// Match everything: every declared signal becomes evaluable.
	results := make([]matching.MatchResult, 0, c.Len())
	for _, f := range c.Fields() {
		results = append(results, matching.MatchResult{
			FieldID: f.ID, Matched: true, MatchedColumn: f.CanonicalColumn, Confidence: 1.0,
		})
	}

	availability := ComputeAvailability(c, batchFor(results...))
	require.NotEmpty(t, availability)
	for signal, a := range availability {
		assert.True(t, a.CanEvaluate, "signal %s", signal)
		assert.NotEmpty(t, a.Fields, "signal %s", signal)
	}
}
