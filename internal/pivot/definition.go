// Package pivot resolves hand-authored SQL pivot templates against a
// discovered schema, substituting semantic column tokens with whatever
// physical names the warehouse actually has, and builds custom pivot SQL from
// dimension/measure definitions.
package pivot

import (
	"fmt"
	"strings"
)

// TablePlaceholder marks where the fully qualified table reference goes in a
// SQL template.
const TablePlaceholder = "{TABLE}"

// columnPlaceholder marks where the resolved physical column goes inside a
// dimension's or measure's expression. It may appear more than once.
const columnPlaceholder = "{COL}"

// Dimension is a named grouping expression referencing one canonical column
// plus optional alternates. With no ExtractFn the expression defaults to
// COALESCE(column, Default).
type Dimension struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Column     string   `yaml:"column"`
	Alternates []string `yaml:"alternates,omitempty"`
	Default    string   `yaml:"default,omitempty"`
	ExtractFn  string   `yaml:"extractFn,omitempty"`
}

// Expression renders the dimension over a resolved physical column.
func (d *Dimension) Expression(column string) string {
	if d.ExtractFn != "" {
		return strings.ReplaceAll(d.ExtractFn, columnPlaceholder, column)
	}
	def := d.Default
	if def == "" {
		def = "Unknown"
	}
	return fmt.Sprintf("COALESCE(%s, '%s')", column, strings.ReplaceAll(def, "'", "''"))
}

// Measure is a named aggregate expression. A measure without a column (e.g. a
// plain COUNT(*)) needs no resolution and can never go missing.
type Measure struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Expr       string   `yaml:"expr"`
	Column     string   `yaml:"column,omitempty"`
	Alternates []string `yaml:"alternates,omitempty"`
}

// Expression renders the measure over a resolved physical column.
func (m *Measure) Expression(column string) string {
	return strings.ReplaceAll(m.Expr, columnPlaceholder, column)
}

// PivotDefinition is one pre-written pivot: a SQL template containing the
// table placeholder and bare column tokens resolvable against a column index.
type PivotDefinition struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description,omitempty"`
	RowDimensions []string `yaml:"rowDimensions,omitempty"`
	Measures      []string `yaml:"measures,omitempty"`
	SQLTemplate   string   `yaml:"sqlTemplate"`
}

// Validate checks a pivot definition for configuration errors.
func (p *PivotDefinition) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pivot definition has empty id")
	}
	if p.SQLTemplate == "" {
		return fmt.Errorf("pivot %q has empty sql template", p.ID)
	}
	if !strings.Contains(p.SQLTemplate, TablePlaceholder) {
		return fmt.Errorf("pivot %q template does not contain %s", p.ID, TablePlaceholder)
	}
	return nil
}

// Library holds the pivot definitions plus the dimension and measure
// vocabulary custom pivots are built from.
type Library struct {
	pivots     []PivotDefinition
	pivotByID  map[string]*PivotDefinition
	dimensions map[string]*Dimension
	measures   map[string]*Measure
}

// NewLibrary builds a library, validating every pivot definition.
func NewLibrary(pivots []PivotDefinition, dimensions []Dimension, measures []Measure) (*Library, error) {
	lib := &Library{
		pivots:     make([]PivotDefinition, len(pivots)),
		pivotByID:  make(map[string]*PivotDefinition, len(pivots)),
		dimensions: make(map[string]*Dimension, len(dimensions)),
		measures:   make(map[string]*Measure, len(measures)),
	}
	copy(lib.pivots, pivots)

	for i := range lib.pivots {
		p := &lib.pivots[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid pivot library: %w", err)
		}
		if _, exists := lib.pivotByID[p.ID]; exists {
			return nil, fmt.Errorf("invalid pivot library: duplicate pivot id %q", p.ID)
		}
		lib.pivotByID[p.ID] = p
	}
	for i := range dimensions {
		d := dimensions[i]
		if d.ID == "" || d.Column == "" {
			return nil, fmt.Errorf("invalid pivot library: dimension needs id and column")
		}
		if _, exists := lib.dimensions[d.ID]; exists {
			return nil, fmt.Errorf("invalid pivot library: duplicate dimension id %q", d.ID)
		}
		lib.dimensions[d.ID] = &d
	}
	for i := range measures {
		m := measures[i]
		if m.ID == "" || m.Expr == "" {
			return nil, fmt.Errorf("invalid pivot library: measure needs id and expr")
		}
		if _, exists := lib.measures[m.ID]; exists {
			return nil, fmt.Errorf("invalid pivot library: duplicate measure id %q", m.ID)
		}
		lib.measures[m.ID] = &m
	}

	return lib, nil
}

// Pivots returns the pivot definitions in declaration order.
func (l *Library) Pivots() []PivotDefinition {
	out := make([]PivotDefinition, len(l.pivots))
	copy(out, l.pivots)
	return out
}

// Pivot looks up a pivot definition by id.
func (l *Library) Pivot(id string) (*PivotDefinition, bool) {
	p, ok := l.pivotByID[id]
	return p, ok
}

// Dimension looks up a dimension by id.
func (l *Library) Dimension(id string) (*Dimension, bool) {
	d, ok := l.dimensions[id]
	return d, ok
}

// Measure looks up a measure by id.
func (l *Library) Measure(id string) (*Measure, bool) {
	m, ok := l.measures[id]
	return m, ok
}
