package discovery

import "strings"

// separators are the characters stripped when building a compact name form.
const separators = "_-$ ."

// CompactName upper-cases a name and strips separator characters, producing
// the compact comparison form (OWNER_USERS -> OWNERUSERS).
func CompactName(name string) string {
	upper := strings.ToUpper(name)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if !strings.ContainsRune(separators, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ColumnIndex is a per-snapshot lookup over discovered columns, keyed by two
// normalized forms of every column name: the upper-cased exact name and the
// upper-cased compact (separator-stripped) name. Lookups always return the
// original column name as the warehouse reported it.
type ColumnIndex struct {
	exact   map[string]string
	compact map[string]string
	columns []DiscoveredColumn
	byName  map[string]*DiscoveredColumn
}

// NewColumnIndex builds an index over a snapshot's columns.
func NewColumnIndex(columns []DiscoveredColumn) *ColumnIndex {
	ix := &ColumnIndex{
		exact:   make(map[string]string, len(columns)),
		compact: make(map[string]string, len(columns)),
		columns: columns,
		byName:  make(map[string]*DiscoveredColumn, len(columns)),
	}

	for i := range columns {
		col := &columns[i]
		upper := strings.ToUpper(col.Name)
		if _, exists := ix.exact[upper]; exists {
			// Name is the natural key within a snapshot; first wins.
			continue
		}
		ix.exact[upper] = col.Name
		ix.byName[upper] = col

		compactKey := CompactName(col.Name)
		if _, exists := ix.compact[compactKey]; !exists {
			ix.compact[compactKey] = col.Name
		}
	}

	return ix
}

// LookupExact resolves a candidate name case-insensitively against the exact
// form, returning the original column name.
func (ix *ColumnIndex) LookupExact(name string) (string, bool) {
	original, ok := ix.exact[strings.ToUpper(name)]
	return original, ok
}

// LookupCompact resolves a candidate after stripping separators from both the
// candidate and the index keys.
func (ix *ColumnIndex) LookupCompact(name string) (string, bool) {
	original, ok := ix.compact[CompactName(name)]
	return original, ok
}

// Lookup tries the exact form first, then the compact form.
func (ix *ColumnIndex) Lookup(name string) (string, bool) {
	if original, ok := ix.LookupExact(name); ok {
		return original, true
	}
	return ix.LookupCompact(name)
}

// Column returns the discovered column for a name (any accepted form).
func (ix *ColumnIndex) Column(name string) (DiscoveredColumn, bool) {
	if original, ok := ix.Lookup(name); ok {
		if col, ok := ix.byName[strings.ToUpper(original)]; ok {
			return *col, true
		}
	}
	return DiscoveredColumn{}, false
}

// Columns returns the indexed columns in discovery order.
func (ix *ColumnIndex) Columns() []DiscoveredColumn {
	return ix.columns
}

// Len returns the number of distinct indexed columns.
func (ix *ColumnIndex) Len() int {
	return len(ix.exact)
}

// Names returns the original column names in discovery order.
func (ix *ColumnIndex) Names() []string {
	seen := make(map[string]bool, len(ix.columns))
	names := make([]string, 0, len(ix.exact))
	for _, col := range ix.columns {
		upper := strings.ToUpper(col.Name)
		if seen[upper] {
			continue
		}
		seen[upper] = true
		names = append(names, col.Name)
	}
	return names
}
