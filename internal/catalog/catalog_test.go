package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	c := Builtin()

	require.NotNil(t, c)
	assert.Greater(t, c.Len(), 20)

	f, ok := c.Field("owner_users")
	require.True(t, ok)
	assert.Equal(t, "OWNER_USERS", f.CanonicalColumn)
	assert.Equal(t, []string{"OWNERUSERS"}, f.AlternateNames)
}

func TestNewRejectsFieldWithoutColumns(t *testing.T) {
	_, err := New([]FieldDefinition{
		{ID: "broken", DisplayName: "Broken", Category: "identity"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no canonical column")
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]FieldDefinition{
		{ID: "guid", CanonicalColumn: "GUID"},
		{ID: "guid", CanonicalColumn: "GUID2"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field id")
}

func TestCandidateColumnsOrder(t *testing.T) {
	f := FieldDefinition{
		ID:              "has_lineage",
		CanonicalColumn: "HAS_LINEAGE",
		AlternateNames:  []string{"HASLINEAGE", "__HASLINEAGE"},
	}

	assert.Equal(t, []string{"HAS_LINEAGE", "HASLINEAGE", "__HASLINEAGE"}, f.CandidateColumns())
}

func TestAliasTableCoversAllVariants(t *testing.T) {
	c := Builtin()
	aliases := c.Aliases()

	// Every variant of has_lineage should map to the same candidate list.
	for _, token := range []string{"HAS_LINEAGE", "HASLINEAGE", "__HASLINEAGE"} {
		candidates, ok := aliases[token]
		require.True(t, ok, "alias table missing token %s", token)
		assert.Equal(t, []string{"HAS_LINEAGE", "HASLINEAGE", "__HASLINEAGE"}, candidates)
	}
}

func TestParseCatalogYAML(t *testing.T) {
	data := []byte(`
fields:
  - id: custom_owner
    displayName: Custom Owner
    category: ownership
    canonicalColumn: CUSTODIAN
    alternateNames: [DATA_CUSTODIAN]
    signalContributions:
      - signal: ownership
        weight: 1.0
        required: true
`)

	c, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	f, ok := c.Field("custom_owner")
	require.True(t, ok)
	assert.Equal(t, "CUSTODIAN", f.CanonicalColumn)
	require.Len(t, f.SignalContributions, 1)
	assert.Equal(t, SignalOwnership, f.SignalContributions[0].Signal)
	assert.True(t, f.SignalContributions[0].Required)
}

func TestParseCatalogYAMLRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte("fields: []\n"))
	require.Error(t, err)
}
