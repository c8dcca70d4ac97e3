package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the YAML document shape for a catalog override file.
type fileFormat struct {
	Fields []FieldDefinition `yaml:"fields"`
}

// Load reads a catalog from a YAML file. The file replaces the built-in
// catalog entirely; merging is a deliberate non-feature so a tenant file is
// always the single source of truth for what it defines.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("catalog file defines no fields")
	}
	return New(doc.Fields)
}
