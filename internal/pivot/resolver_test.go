package pivot

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
)

func indexOf(names ...string) *discovery.ColumnIndex {
	columns := make([]discovery.DiscoveredColumn, 0, len(names))
	for _, n := range names {
		columns = append(columns, discovery.DiscoveredColumn{Name: n})
	}
	return discovery.NewColumnIndex(columns)
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(Builtin(), catalog.Builtin(), nil)
}

func TestResolveSubstitutesAlternates(t *testing.T) {
	r := newResolver(t)
	def, ok := r.Library().Pivot("assets_by_connector")
	require.True(t, ok)

	ix := indexOf("CONNECTORNAME", "HASLINEAGE", "STATUS")
	resolved := r.Resolve(def, `DB.PUBLIC.ASSETS`, ix)

	assert.Equal(t, "assets_by_connector", resolved.PivotID)
	assert.Contains(t, resolved.SQL, "COALESCE(CONNECTORNAME, 'Unknown')")
	assert.Contains(t, resolved.SQL, "COUNT_IF(HASLINEAGE = TRUE)")
	assert.Contains(t, resolved.SQL, "FROM DB.PUBLIC.ASSETS")
	assert.NotContains(t, resolved.SQL, TablePlaceholder)
	assert.Empty(t, resolved.MissingColumns)

	assert.ElementsMatch(t, []AlternateUse{
		{Token: "CONNECTOR_NAME", UsedAlternateName: "CONNECTORNAME"},
		{Token: "HAS_LINEAGE", UsedAlternateName: "HASLINEAGE"},
	}, resolved.Alternates)
}

func TestResolveGolden(t *testing.T) {
	r := newResolver(t)
	def, ok := r.Library().Pivot("assets_by_connector")
	require.True(t, ok)

	ix := indexOf("CONNECTORNAME", "HASLINEAGE", "STATUS")
	resolved := r.Resolve(def, `"DB"."PUBLIC"."ASSETS"`, ix)

	g := goldie.New(t)
	g.Assert(t, "assets_by_connector", []byte(resolved.SQL))
}

func TestResolveMissingColumnLeavesTokenInPlace(t *testing.T) {
	r := newResolver(t)

	template := `SELECT COUNT_IF(HASLINEAGE = TRUE) AS WITH_LINEAGE FROM {TABLE}`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("GUID", "NAME"))

	// Token stays in the best-effort SQL; the caller decides runnability.
	assert.Contains(t, resolved.SQL, "HASLINEAGE")
	assert.Equal(t, []string{"HASLINEAGE"}, resolved.MissingColumns)
	assert.Empty(t, resolved.Alternates)
}

func TestResolveDeduplicatesMissingColumns(t *testing.T) {
	r := newResolver(t)

	template := `SELECT HAS_LINEAGE, COUNT_IF(HAS_LINEAGE = TRUE) FROM {TABLE} WHERE HAS_LINEAGE IS NOT NULL`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("GUID"))

	assert.Equal(t, []string{"HAS_LINEAGE"}, resolved.MissingColumns)
}

func TestResolveExactMatchRecordsNoAlternate(t *testing.T) {
	r := newResolver(t)

	template := `SELECT CONNECTOR_NAME FROM {TABLE}`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("CONNECTOR_NAME", "CONNECTORNAME"))

	assert.Contains(t, resolved.SQL, "SELECT CONNECTOR_NAME FROM")
	assert.Empty(t, resolved.Alternates)
	assert.Empty(t, resolved.MissingColumns)
}

func TestResolveLeavesUnknownTokensUntouched(t *testing.T) {
	r := newResolver(t)

	template := `SELECT MYSTERY_COLUMN FROM {TABLE}`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("GUID"))

	assert.Contains(t, resolved.SQL, "MYSTERY_COLUMN")
	assert.Empty(t, resolved.MissingColumns)
}

func TestResolveUnknownTokenWithDirectIndexHit(t *testing.T) {
	r := newResolver(t)

	// Not in the alias table, but physically present: replaced with the
	// original-cased name.
	template := `SELECT ROW_NUM FROM {TABLE}`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("row_num"))

	assert.Contains(t, resolved.SQL, "SELECT row_num FROM")
}

func TestResolveIdempotent(t *testing.T) {
	r := newResolver(t)
	def, ok := r.Library().Pivot("ownership_by_connector")
	require.True(t, ok)

	ix := indexOf("CONNECTORNAME", "OWNERUSERS", "STATUS")
	first := r.Resolve(def, "DB.PUBLIC.ASSETS", ix)
	second := r.Resolve(def, "DB.PUBLIC.ASSETS", ix)

	assert.Equal(t, first.SQL, second.SQL)

	// Resolving the already-resolved SQL again changes nothing: every
	// substituted name is itself the physical column.
	again := r.ResolveSQL(first.SQL, "DB.PUBLIC.ASSETS", ix)
	assert.Equal(t, first.SQL, again.SQL)
}

func TestResolveQuotedToken(t *testing.T) {
	r := newResolver(t)

	template := `SELECT "HAS_LINEAGE" FROM {TABLE}`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("HASLINEAGE"))

	assert.Contains(t, resolved.SQL, `"HASLINEAGE"`)
}

func TestResolveQuotedAliasKeepsItsCase(t *testing.T) {
	r := newResolver(t)

	// "row_num" is a hand-written SELECT alias, not a catalog token. It
	// collides case-insensitively with a physical column, but quoted
	// identifiers are case-sensitive: rewriting the alias would change it.
	template := `SELECT ROW_NUM AS "row_num" FROM {TABLE} ORDER BY "row_num"`
	resolved := r.ResolveSQL(template, "DB.PUBLIC.ASSETS", indexOf("ROW_NUM"))

	assert.Contains(t, resolved.SQL, `AS "row_num"`)
	assert.Contains(t, resolved.SQL, `ORDER BY "row_num"`)
	// The bare occurrence is already the physical name and stays as-is.
	assert.Contains(t, resolved.SQL, "SELECT ROW_NUM AS")
	assert.Empty(t, resolved.MissingColumns)
}

func TestBuiltinLibraryValid(t *testing.T) {
	lib := Builtin()
	require.NotEmpty(t, lib.Pivots())

	for _, p := range lib.Pivots() {
		for _, id := range p.RowDimensions {
			_, ok := lib.Dimension(id)
			assert.True(t, ok, "pivot %s references unknown dimension %s", p.ID, id)
		}
		for _, id := range p.Measures {
			_, ok := lib.Measure(id)
			assert.True(t, ok, "pivot %s references unknown measure %s", p.ID, id)
		}
	}
}

func TestParseMergesOverBuiltins(t *testing.T) {
	data := []byte(`
pivots:
  - id: custom_freshness
    title: Freshness
    sqlTemplate: "SELECT UPDATE_TIME FROM {TABLE} LIMIT 10"
dimensions:
  - id: domain
    title: Domain
    column: DOMAIN_GUIDS
measures:
  - id: tagged
    title: Tagged
    expr: "COUNT_IF(ARRAY_SIZE({COL}) > 0)"
    column: TAGS
`)

	lib, err := Parse(data)
	require.NoError(t, err)

	_, ok := lib.Pivot("assets_by_connector")
	assert.True(t, ok)
	_, ok = lib.Pivot("custom_freshness")
	assert.True(t, ok)
	_, ok = lib.Dimension("domain")
	assert.True(t, ok)
	_, ok = lib.Measure("tagged")
	assert.True(t, ok)
}

func TestParseRejectsTemplateWithoutPlaceholder(t *testing.T) {
	data := []byte(`
pivots:
  - id: broken
    title: Broken
    sqlTemplate: "SELECT 1"
`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{TABLE}")
}
