package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
snowflake:
  account: acme-xy12345
  user: svc_fieldline
  database: ATLAN_GOLD
  schema: PUBLIC
  queryTimeout: 30s
feedback:
  database: GOVERNANCE
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "acme-xy12345", cfg.Snowflake.Account)
	assert.Equal(t, "ATLAN_GOLD", cfg.Snowflake.Database)
	assert.Equal(t, 30*time.Second, cfg.Snowflake.QueryTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset fields keep their defaults.
	assert.Equal(t, "COMPUTE_WH", cfg.Snowflake.Warehouse)
	assert.Equal(t, "GOVERNANCE", cfg.Feedback.Database)
	assert.Equal(t, "PUBLIC", cfg.Feedback.Schema)
}

func TestParseAppliesEnvOverrides(t *testing.T) {
	t.Setenv("FIELDLINE_SNOWFLAKE_PASSWORD", "s3cret")
	t.Setenv("FIELDLINE_SNOWFLAKE_DATABASE", "OVERRIDE_DB")

	cfg, err := Parse([]byte(`
snowflake:
  database: FILE_DB
`))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Snowflake.Password)
	assert.Equal(t, "OVERRIDE_DB", cfg.Snowflake.Database)
}

func TestInitCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = os.Stat(path)
	require.NoError(t, err)

	// Second init reads the file it wrote.
	again, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Feedback, again.Feedback)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("snowflake: ["))
	require.Error(t, err)
}
