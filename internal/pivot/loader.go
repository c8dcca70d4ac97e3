package pivot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type libraryFile struct {
	Pivots     []PivotDefinition `yaml:"pivots"`
	Dimensions []Dimension       `yaml:"dimensions"`
	Measures   []Measure         `yaml:"measures"`
}

// Parse builds a library from YAML. Definitions in the file are appended
// after the builtin ones, so a tenant file can add pivots without restating
// the shipped set.
func Parse(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pivot library: %w", err)
	}

	return NewLibrary(
		append(append([]PivotDefinition{}, builtinPivots...), file.Pivots...),
		append(append([]Dimension{}, builtinDimensions...), file.Dimensions...),
		append(append([]Measure{}, builtinMeasures...), file.Measures...),
	)
}

// Load reads a pivot library YAML file and merges it over the builtins.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pivot library %s: %w", path, err)
	}
	return Parse(data)
}
