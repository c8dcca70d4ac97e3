package pivot

import (
	"strings"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// AlternateUse records one non-canonical substitution, kept for debugging
// resolved SQL against the tenant's schema.
type AlternateUse struct {
	Token             string `json:"token"`
	UsedAlternateName string `json:"usedAlternateName"`
}

// ResolvedPivot is the outcome of resolving one template. SQL is always
// best-effort: tokens that resolved to nothing stay in place and are listed
// in MissingColumns, and the caller decides whether the pivot is still
// runnable.
type ResolvedPivot struct {
	PivotID        string         `json:"pivotId,omitempty"`
	SQL            string         `json:"sql"`
	MissingColumns []string       `json:"missingColumns,omitempty"`
	Alternates     []AlternateUse `json:"alternates,omitempty"`
}

// Resolver substitutes semantic column tokens in pivot SQL with the physical
// names a column index reports.
type Resolver struct {
	lib     *Library
	aliases catalog.AliasTable
	log     *logger.Logger
}

// NewResolver creates a resolver over a pivot library and a field catalog.
// The catalog's alias table decides which SQL tokens are column references
// worth resolving.
func NewResolver(lib *Library, c *catalog.Catalog, log *logger.Logger) *Resolver {
	return &Resolver{lib: lib, aliases: c.Aliases(), log: log}
}

// Library returns the resolver's pivot library.
func (r *Resolver) Library() *Library {
	return r.lib
}

// Resolve substitutes the table placeholder and every resolvable column token
// in the pivot's template. Resolution is deterministic: the same definition
// against the same index always yields byte-identical SQL.
func (r *Resolver) Resolve(def *PivotDefinition, tableRef string, ix *discovery.ColumnIndex) ResolvedPivot {
	resolved := r.ResolveSQL(def.SQLTemplate, tableRef, ix)
	resolved.PivotID = def.ID

	if r.log != nil && len(resolved.MissingColumns) > 0 {
		r.log.Warnf("pivot %s has unresolved columns: %s",
			def.ID, strings.Join(resolved.MissingColumns, ", "))
	}

	return resolved
}

// ResolveSQL runs template resolution over a raw SQL text. Replacements are
// applied in one pass over the original text, so a substituted name can never
// be re-matched as another token.
func (r *Resolver) ResolveSQL(template, tableRef string, ix *discovery.ColumnIndex) ResolvedPivot {
	sql := strings.ReplaceAll(template, TablePlaceholder, tableRef)
	tokens := Tokenize(sql)

	// Resolve each distinct token once.
	replacements := make(map[string]string)
	directHits := make(map[string]bool)
	var out ResolvedPivot
	seenMissing := make(map[string]bool)

	for _, tok := range tokens {
		key := strings.ToUpper(tok.Name)
		if _, done := replacements[key]; done || seenMissing[key] {
			continue
		}

		candidates, known := r.aliases[key]
		if !known {
			// Not an alias-mapped token: replace only on a direct index
			// hit, otherwise assume genuine SQL syntax and leave it alone.
			if original, ok := ix.LookupExact(tok.Name); ok {
				replacements[key] = original
				directHits[key] = true
			}
			continue
		}

		m := matching.MatchCandidates(tok.Name, candidates, ix)
		if !m.Matched {
			seenMissing[key] = true
			out.MissingColumns = append(out.MissingColumns, tok.Name)
			continue
		}

		replacements[key] = m.MatchedColumn
		if !strings.EqualFold(m.MatchedColumn, tok.Name) {
			out.Alternates = append(out.Alternates, AlternateUse{
				Token:             tok.Name,
				UsedAlternateName: m.MatchedColumn,
			})
		}
	}

	// Single pass over the original text, splicing replacements in by
	// position.
	var b strings.Builder
	b.Grow(len(sql))
	last := 0
	for _, tok := range tokens {
		key := strings.ToUpper(tok.Name)
		repl, ok := replacements[key]
		if !ok {
			continue
		}
		if tok.Quoted {
			// A quoted identifier is case-sensitive. A direct index hit
			// that differs only by case is a collision (a SELECT alias, a
			// quoted reference segment), not this column; keep the author's
			// exact identifier. Alias-mapped tokens still resolve.
			if directHits[key] && repl != tok.Name {
				continue
			}
			repl = `"` + strings.ReplaceAll(repl, `"`, `""`) + `"`
		} else {
			repl = warehouse.QuoteIdentifier(repl)
		}
		b.WriteString(sql[last:tok.Start])
		b.WriteString(repl)
		last = tok.End
	}
	b.WriteString(sql[last:])
	out.SQL = b.String()

	return out
}
