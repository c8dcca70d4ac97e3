package discovery

import "strings"

// ColumnKind classifies a column for coverage-predicate selection.
type ColumnKind string

const (
	KindArray     ColumnKind = "array"
	KindBoolean   ColumnKind = "boolean"
	KindTimestamp ColumnKind = "timestamp"
	KindString    ColumnKind = "string"
)

// kindPattern maps a column-name substring to a kind. The table is ordered;
// the first matching entry wins.
type kindPattern struct {
	substring string
	kind      ColumnKind
}

// namePatterns is the curated name-based classification policy. Name patterns
// take precedence over the declared SQL type because warehouses report
// generic types (VARIANT) for structured columns.
var namePatterns = []kindPattern{
	// Multi-valued governance attributes stored as arrays.
	{"OWNER_USERS", KindArray},
	{"OWNERUSERS", KindArray},
	{"OWNER_GROUPS", KindArray},
	{"OWNERGROUPS", KindArray},
	{"ADMIN_USERS", KindArray},
	{"ADMINUSERS", KindArray},
	{"ADMIN_GROUPS", KindArray},
	{"ADMINGROUPS", KindArray},
	{"TAGS", KindArray},
	{"CLASSIFICATION_NAMES", KindArray},
	{"CLASSIFICATIONNAMES", KindArray},
	{"TERM_GUIDS", KindArray},
	{"TERMGUIDS", KindArray},
	{"MEANINGS", KindArray},
	{"ASSIGNEDTERMS", KindArray},
	{"DOMAIN_GUIDS", KindArray},
	{"DOMAINGUIDS", KindArray},

	// Flags.
	{"HAS_LINEAGE", KindBoolean},
	{"HASLINEAGE", KindBoolean},
	{"IS_PRIMARY_KEY", KindBoolean},
	{"ISPRIMARYKEY", KindBoolean},
	{"IS_FOREIGN_KEY", KindBoolean},
	{"ISFOREIGNKEY", KindBoolean},
	{"IS_MONITORED", KindBoolean},
	{"ISMONITORED", KindBoolean},

	// Lifecycle timestamps.
	{"CREATE_TIME", KindTimestamp},
	{"CREATETIME", KindTimestamp},
	{"UPDATE_TIME", KindTimestamp},
	{"UPDATETIME", KindTimestamp},
	{"TIMESTAMP", KindTimestamp},
}

// typePatterns maps declared SQL type substrings to kinds, consulted only
// when no name pattern matches.
var typePatterns = []kindPattern{
	{"ARRAY", KindArray},
	{"BOOLEAN", KindBoolean},
	{"TIMESTAMP", KindTimestamp},
	{"DATE", KindTimestamp},
}

// InferKind classifies a column. Order: (1) curated name patterns,
// (2) declared type substrings, (3) default string.
func InferKind(name, dataType string) ColumnKind {
	upperName := strings.ToUpper(name)
	for _, p := range namePatterns {
		if strings.Contains(upperName, p.substring) {
			return p.kind
		}
	}

	upperType := strings.ToUpper(dataType)
	for _, p := range typePatterns {
		if strings.Contains(upperType, p.substring) {
			return p.kind
		}
	}

	return KindString
}
