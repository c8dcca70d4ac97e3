package tenant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/warehouse"
)

// scriptedExecutor routes each statement to a canned result by substring.
type scriptedExecutor struct {
	responses []scriptedResponse
	queries   []string
}

type scriptedResponse struct {
	contains string
	result   *warehouse.Result
	err      error
}

func (s *scriptedExecutor) Execute(ctx context.Context, sql string) (*warehouse.Result, error) {
	s.queries = append(s.queries, sql)
	for _, r := range s.responses {
		if strings.Contains(sql, r.contains) {
			return r.result, r.err
		}
	}
	return &warehouse.Result{}, nil
}

func countResult(n int64) *warehouse.Result {
	return &warehouse.Result{Columns: []string{"N"}, Rows: [][]any{{n}}}
}

func testExecutor() *scriptedExecutor {
	return &scriptedExecutor{responses: []scriptedResponse{
		{
			contains: "AND TABLE_TYPE",
			result: &warehouse.Result{
				Columns: []string{"TABLE_NAME", "TABLE_TYPE", "ROW_COUNT", "BYTES", "TABLE_OWNER", "COMMENT"},
				Rows: [][]any{
					{"ASSETS", "BASE TABLE", int64(5000), int64(1 << 20), "ADMIN", ""},
					{"TAG_RELATIONSHIP", "BASE TABLE", int64(300), int64(4096), "ADMIN", ""},
				},
			},
		},
		{
			contains: "INFORMATION_SCHEMA.COLUMNS",
			result: &warehouse.Result{
				Columns: []string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "ORDINAL_POSITION"},
				Rows: [][]any{
					{"GUID", "VARCHAR", "NO", int64(1)},
					{"CONNECTORNAME", "VARCHAR", "YES", int64(2)},
					{"OWNER-USERS", "ARRAY", "YES", int64(3)},
				},
			},
		},
		{contains: "TABLE_NAME = 'CUSTOMMETADATA_RELATIONSHIP'", result: countResult(1)},
		{
			contains: `"CUSTOMMETADATA_RELATIONSHIP"`,
			result: &warehouse.Result{
				Columns: []string{"SETDISPLAYNAME", "ATTRIBUTEDISPLAYNAME", "ATTRIBUTENAME"},
				Rows: [][]any{
					{"Data Quality", "Freshness SLA", "freshnessSla"},
					{"Data Quality", "Owner Team", "ownerTeam"},
					{"Compliance", "PII Level", "piiLevel"},
				},
			},
		},
		{contains: "TABLE_NAME = 'TAG_RELATIONSHIP'", result: countResult(1)},
		{
			contains: `"TAG_RELATIONSHIP"`,
			result: &warehouse.Result{
				Columns: []string{"TAGNAME", "USAGE_COUNT"},
				Rows: [][]any{
					{"PII", int64(120)},
					{"Confidential", int64(45)},
				},
			},
		},
		{contains: "TABLE_NAME = 'ATLASGLOSSARY_ENTITY'", result: countResult(0)},
	}}
}

func TestBuildAssemblesConfig(t *testing.T) {
	exec := testExecutor()
	b := NewBuilder(exec, catalog.Builtin(), nil)

	cfg, err := b.Build(context.Background(), "acme", "DB", "PUBLIC")
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.TenantID)
	assert.Equal(t, "ASSETS", cfg.PrimaryTable)
	assert.Len(t, cfg.Tables, 2)
	assert.Equal(t, 1, cfg.Version)
	require.NotEmpty(t, cfg.FieldMappings)

	byID := make(map[string]FieldMapping)
	for _, m := range cfg.FieldMappings {
		byID[m.CanonicalFieldID] = m
	}

	// Exact canonical: accepted automatically.
	guid := byID["guid"]
	assert.Equal(t, "GUID", guid.MatchedColumn)
	assert.Equal(t, "auto", guid.Status)

	// Alternate name match: still above the cut line.
	connector := byID["connector_name"]
	assert.Equal(t, "CONNECTORNAME", connector.MatchedColumn)
	assert.Equal(t, "auto", connector.Status)

	// Compact-only match: flagged for review.
	owners := byID["owner_users"]
	assert.Equal(t, "OWNER-USERS", owners.MatchedColumn)
	assert.Equal(t, "pending", owners.Status)

	// Nothing like HAS_LINEAGE exists.
	lineage := byID["has_lineage"]
	assert.Empty(t, lineage.MatchedColumn)
	assert.Equal(t, "pending", lineage.Status)
}

func TestBuildCollectsCompanionVocabulary(t *testing.T) {
	exec := testExecutor()
	b := NewBuilder(exec, catalog.Builtin(), nil)

	cfg, err := b.Build(context.Background(), "acme", "DB", "PUBLIC")
	require.NoError(t, err)

	require.Len(t, cfg.CustomMetadata, 2)
	assert.Equal(t, "DATA_QUALITY", cfg.CustomMetadata[0].Name)
	assert.Equal(t, "Data Quality", cfg.CustomMetadata[0].DisplayName)
	assert.Len(t, cfg.CustomMetadata[0].Attributes, 2)

	require.Len(t, cfg.Classifications, 2)
	assert.Equal(t, "PII", cfg.Classifications[0].Name)
	assert.Equal(t, int64(120), cfg.Classifications[0].UsageCount)

	// ATLASGLOSSARY_ENTITY does not exist in this tenant.
	assert.Empty(t, cfg.Domains)
}

func TestBuildDegradesOnCompanionFailure(t *testing.T) {
	exec := testExecutor()
	// Classifications query blows up; the config still builds.
	for i := range exec.responses {
		if exec.responses[i].contains == `"TAG_RELATIONSHIP"` {
			exec.responses[i].result = nil
			exec.responses[i].err = errors.New("permission denied")
		}
	}
	b := NewBuilder(exec, catalog.Builtin(), nil)

	cfg, err := b.Build(context.Background(), "acme", "DB", "PUBLIC")
	require.NoError(t, err)
	assert.Empty(t, cfg.Classifications)
	assert.NotEmpty(t, cfg.FieldMappings)
}

func TestBuildFailsWithoutTableListing(t *testing.T) {
	exec := &scriptedExecutor{responses: []scriptedResponse{
		{contains: "INFORMATION_SCHEMA.TABLES", err: errors.New("unreachable")},
	}}
	b := NewBuilder(exec, catalog.Builtin(), nil)

	_, err := b.Build(context.Background(), "acme", "DB", "PUBLIC")
	require.Error(t, err)
}

func TestBuildNoPrimaryTable(t *testing.T) {
	exec := &scriptedExecutor{responses: []scriptedResponse{
		{
			contains: "AND TABLE_TYPE",
			result: &warehouse.Result{
				Columns: []string{"TABLE_NAME", "TABLE_TYPE", "ROW_COUNT", "BYTES", "TABLE_OWNER", "COMMENT"},
				Rows:    [][]any{{"ORDERS", "BASE TABLE", int64(10), int64(0), "", ""}},
			},
		},
	}}
	b := NewBuilder(exec, catalog.Builtin(), nil)

	cfg, err := b.Build(context.Background(), "acme", "DB", "PUBLIC")
	require.NoError(t, err)
	assert.Empty(t, cfg.PrimaryTable)
	assert.Empty(t, cfg.FieldMappings)
}
