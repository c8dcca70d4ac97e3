// Package catalog holds the static field catalog: the semantically named
// metadata fields the workbench presents regardless of how a tenant's
// warehouse physically names its columns.
package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, immutable collection of field definitions.
type Catalog struct {
	fields []FieldDefinition
	byID   map[string]*FieldDefinition
}

// New builds a catalog from an ordered list of field definitions. Every
// definition is validated; an invalid definition fails the whole load.
func New(fields []FieldDefinition) (*Catalog, error) {
	c := &Catalog{
		fields: make([]FieldDefinition, len(fields)),
		byID:   make(map[string]*FieldDefinition, len(fields)),
	}
	copy(c.fields, fields)

	for i := range c.fields {
		f := &c.fields[i]
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if _, exists := c.byID[f.ID]; exists {
			return nil, fmt.Errorf("invalid catalog: duplicate field id %q", f.ID)
		}
		c.byID[f.ID] = f
	}

	return c, nil
}

// MustNew is New for compiled-in catalogs where a failure is a programming
// error.
func MustNew(fields []FieldDefinition) *Catalog {
	c, err := New(fields)
	if err != nil {
		panic(err)
	}
	return c
}

// Fields returns the definitions in declaration order.
func (c *Catalog) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(c.fields))
	copy(out, c.fields)
	return out
}

// Field looks up a definition by id.
func (c *Catalog) Field(id string) (*FieldDefinition, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// Len returns the number of fields.
func (c *Catalog) Len() int {
	return len(c.fields)
}

// AliasTable maps an upper-cased column token to the ordered candidate column
// names that may satisfy it. The pivot resolver consults this table to decide
// which extracted SQL tokens are column references worth resolving.
type AliasTable map[string][]string

// Aliases derives the token alias table from the catalog: every candidate
// column name of every field maps to that field's full candidate list, so a
// template may reference any variant and still resolve to whichever one the
// warehouse actually has.
func (c *Catalog) Aliases() AliasTable {
	table := make(AliasTable)
	for i := range c.fields {
		candidates := c.fields[i].CandidateColumns()
		for _, name := range candidates {
			key := strings.ToUpper(name)
			if _, exists := table[key]; !exists {
				table[key] = candidates
			}
		}
	}
	return table
}
