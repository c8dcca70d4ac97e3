package warehouse

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// QuoteIdentifier quotes a warehouse identifier unless it is already a plain
// unquoted identifier. Embedded double quotes are doubled.
func QuoteIdentifier(name string) string {
	if name == "" {
		return name
	}
	if identifierRe.MatchString(name) {
		return name
	}
	if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) && len(name) >= 2 {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EscapeLiteral doubles single quotes for use inside a string literal.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// TableRef builds a fully qualified, quoted table reference.
func TableRef(database, schema, table string) string {
	return fmt.Sprintf("%s.%s.%s",
		QuoteIdentifier(database), QuoteIdentifier(schema), QuoteIdentifier(table))
}
