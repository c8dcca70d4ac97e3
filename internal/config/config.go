// Package config loads the fieldline configuration: a YAML file with
// environment-variable overrides for the credentials that should not live on
// disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fieldline/fieldline/internal/session"
	"github.com/fieldline/fieldline/internal/warehouse"
)

// FeedbackConfig points pivot feedback at a writable database/schema.
type FeedbackConfig struct {
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
}

// Config is the full application configuration.
type Config struct {
	Snowflake warehouse.SnowflakeConfig `yaml:"snowflake"`
	Session   session.Config            `yaml:"session"`
	Feedback  FeedbackConfig            `yaml:"feedback"`

	// CatalogFile and PivotFile optionally extend the compiled-in catalog
	// and pivot library.
	CatalogFile string `yaml:"catalog_file,omitempty"`
	PivotFile   string `yaml:"pivot_file,omitempty"`

	// HistoryPath locates the local query-history database.
	HistoryPath string `yaml:"history_path"`

	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return os.ExpandEnv("$HOME/.fieldline/config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Snowflake: warehouse.SnowflakeConfig{
			Warehouse:    "COMPUTE_WH",
			QueryTimeout: 120 * time.Second,
		},
		Session: session.DefaultConfig(),
		Feedback: FeedbackConfig{
			Database: "FIELD_METADATA",
			Schema:   "PUBLIC",
		},
		HistoryPath: os.ExpandEnv("$HOME/.fieldline/history.db"),
		LogLevel:    "info",
	}
}

// Init loads the configuration from configFile, creating the directory and a
// default file on first run, then applies environment overrides.
func Init(configFile string) (*Config, error) {
	cfg := Default()

	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %v", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %v", err)
		}
	} else {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %v", err)
		}
		if err := os.WriteFile(configFile, data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write default config file: %v", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Parse reads a configuration from YAML without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets credentials and context come from the environment instead of
// the config file.
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"FIELDLINE_SNOWFLAKE_ACCOUNT":   &c.Snowflake.Account,
		"FIELDLINE_SNOWFLAKE_USER":      &c.Snowflake.User,
		"FIELDLINE_SNOWFLAKE_PASSWORD":  &c.Snowflake.Password,
		"FIELDLINE_SNOWFLAKE_WAREHOUSE": &c.Snowflake.Warehouse,
		"FIELDLINE_SNOWFLAKE_DATABASE":  &c.Snowflake.Database,
		"FIELDLINE_SNOWFLAKE_SCHEMA":    &c.Snowflake.Schema,
		"FIELDLINE_SNOWFLAKE_ROLE":      &c.Snowflake.Role,
		"FIELDLINE_FEEDBACK_DB":         &c.Feedback.Database,
		"FIELDLINE_FEEDBACK_SCHEMA":     &c.Feedback.Schema,
		"FIELDLINE_LOG_LEVEL":           &c.LogLevel,
	}
	for key, target := range overrides {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
}
