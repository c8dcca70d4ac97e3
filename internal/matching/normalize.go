package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// foldIdentifier strips diacritics from an identifier (NFD decompose, drop
// combining marks) so quoted unicode column names compare against their ASCII
// candidates.
func foldIdentifier(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelToSnake inserts an underscore at every lower-to-upper case boundary
// (ownerUsers -> owner_Users). Names that are already upper-cased or
// snake_cased pass through unchanged.
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}
