package coverage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/warehouse"
)

type fakeExecutor struct {
	result  *warehouse.Result
	err     error
	queries []string
}

func (f *fakeExecutor) Execute(ctx context.Context, sql string) (*warehouse.Result, error) {
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func sampleMatched() []MatchedField {
	return []MatchedField{
		{FieldID: "guid", Column: "GUID", Kind: discovery.KindString},
		{FieldID: "owner_users", Column: "OWNER_USERS", Kind: discovery.KindArray},
		{FieldID: "has_lineage", Column: "HAS_LINEAGE", Kind: discovery.KindBoolean},
	}
}

func TestBuildCoverageQueryPredicatesPerKind(t *testing.T) {
	sql, ok := BuildCoverageQuery(sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "STATUS = 'ACTIVE'")
	require.True(t, ok)

	assert.Contains(t, sql, "COUNT(*) AS TOTAL_COUNT")
	assert.Contains(t, sql, `COUNT_IF(GUID IS NOT NULL AND CAST(GUID AS VARCHAR) <> '') AS "guid"`)
	assert.Contains(t, sql, `COUNT_IF(OWNER_USERS IS NOT NULL AND ARRAY_SIZE(OWNER_USERS) > 0) AS "owner_users"`)
	assert.Contains(t, sql, `COUNT_IF(HAS_LINEAGE = TRUE) AS "has_lineage"`)
	assert.Contains(t, sql, `FROM "DB"."PUBLIC"."ASSETS"`)
	assert.Contains(t, sql, "WHERE STATUS = 'ACTIVE'")
}

func TestBuildCoverageQueryGolden(t *testing.T) {
	sql, ok := BuildCoverageQuery(sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "STATUS = 'ACTIVE'")
	require.True(t, ok)

	g := goldie.New(t)
	g.Assert(t, "coverage_query", []byte(sql))
}

func TestBuildCoverageQueryZeroFields(t *testing.T) {
	sql, ok := BuildCoverageQuery(nil, `"DB"."PUBLIC"."ASSETS"`, "")
	assert.False(t, ok)
	assert.Empty(t, sql)
}

func TestBuildCoverageQueryNoFilter(t *testing.T) {
	sql, ok := BuildCoverageQuery(sampleMatched()[:1], `"DB"."PUBLIC"."ASSETS"`, "")
	require.True(t, ok)
	assert.NotContains(t, sql, "WHERE")
}

func TestBuildCoverageQueryIsSelectOnly(t *testing.T) {
	sql, ok := BuildCoverageQuery(sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "STATUS = 'ACTIVE'")
	require.True(t, ok)
	assert.True(t, warehouse.IsQueryAllowed(sql))
}

func TestComputeCoverage(t *testing.T) {
	row := warehouse.Record{
		"TOTAL_COUNT": int64(200),
		"GUID":        int64(200),
		"OWNER_USERS": int64(75),
		"HAS_LINEAGE": int64(1),
	}

	cov := ComputeCoverage(row, sampleMatched())
	require.Len(t, cov, 3)

	assert.Equal(t, FieldCoverage{Count: 200, Total: 200, Percentage: 100}, cov["guid"])
	assert.Equal(t, FieldCoverage{Count: 75, Total: 200, Percentage: 37.5}, cov["owner_users"])
	assert.Equal(t, FieldCoverage{Count: 1, Total: 200, Percentage: 0.5}, cov["has_lineage"])
}

func TestComputeCoverageRoundsToOneDecimal(t *testing.T) {
	row := warehouse.Record{
		"TOTAL_COUNT": int64(3),
		"GUID":        int64(1),
	}

	cov := ComputeCoverage(row, sampleMatched()[:1])
	assert.Equal(t, 33.3, cov["guid"].Percentage)
}

func TestComputeCoverageZeroTotal(t *testing.T) {
	row := warehouse.Record{
		"TOTAL_COUNT": int64(0),
		"GUID":        int64(0),
	}

	cov := ComputeCoverage(row, sampleMatched()[:1])
	assert.Equal(t, 0.0, cov["guid"].Percentage)
}

func TestComputeCoveragePercentageBounds(t *testing.T) {
	// Counts arriving as decimal strings still parse; percentage stays in
	// [0, 100] even for inconsistent aggregates.
	row := warehouse.Record{
		"TOTAL_COUNT": "100",
		"GUID":        "105",
	}

	cov := ComputeCoverage(row, sampleMatched()[:1])
	assert.Equal(t, 100.0, cov["guid"].Percentage)
}

func TestEngineRun(t *testing.T) {
	exec := &fakeExecutor{result: &warehouse.Result{
		Columns: []string{"TOTAL_COUNT", "guid", "owner_users", "has_lineage"},
		Rows:    [][]any{{int64(10), int64(10), int64(4), int64(2)}},
	}}
	e := NewEngine(exec, nil)

	report, err := e.Run(context.Background(), sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "STATUS = 'ACTIVE'")
	require.NoError(t, err)
	require.True(t, report.Available)
	require.Len(t, exec.queries, 1)

	assert.Equal(t, int64(10), report.Total)
	assert.Equal(t, 40.0, report.Fields["owner_users"].Percentage)
	assert.Equal(t, 20.0, report.Fields["has_lineage"].Percentage)
}

func TestEngineRunZeroMatchedIssuesNoQuery(t *testing.T) {
	exec := &fakeExecutor{}
	e := NewEngine(exec, nil)

	report, err := e.Run(context.Background(), nil, `"DB"."PUBLIC"."ASSETS"`, "")
	require.NoError(t, err)
	assert.False(t, report.Available)
	assert.Empty(t, exec.queries)
}

func TestEngineRunExecutorFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("warehouse unreachable")}
	e := NewEngine(exec, nil)

	_, err := e.Run(context.Background(), sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "")
	require.Error(t, err)

	var qerr *warehouse.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "coverage aggregate", qerr.Context)
}

func TestEngineRunEmptyResult(t *testing.T) {
	exec := &fakeExecutor{result: &warehouse.Result{}}
	e := NewEngine(exec, nil)

	_, err := e.Run(context.Background(), sampleMatched(), `"DB"."PUBLIC"."ASSETS"`, "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "aggregate row"))
}

func TestFromBatch(t *testing.T) {
	ix := discovery.NewColumnIndex([]discovery.DiscoveredColumn{
		{Name: "GUID", Kind: discovery.KindString},
		{Name: "OWNER_USERS", Kind: discovery.KindArray},
	})

	batch := matching.BatchResult{
		Results: []matching.MatchResult{
			{FieldID: "guid", Matched: true, MatchedColumn: "GUID", Confidence: 1.0},
			{FieldID: "owner_users", Matched: true, MatchedColumn: "OWNER_USERS", Confidence: 0.9},
			{FieldID: "readme", Matched: false},
		},
		Stats: matching.Stats{Total: 3, Matched: 2, Unmatched: 1},
	}

	matched := FromBatch(batch, ix)
	require.Len(t, matched, 2)
	assert.Equal(t, discovery.KindString, matched[0].Kind)
	assert.Equal(t, discovery.KindArray, matched[1].Kind)
}
