package pivot

import (
	"regexp"
	"strings"
)

// The tokenizer extracts candidate column identifiers from hand-authored SQL
// templates: any quoted identifier plus any bare upper-case word that is not
// on one of the deny lists below. It is intentionally conservative, not a SQL
// grammar; identifiers in unusual syntactic positions may be missed, and that
// is accepted behavior for the constrained templates it runs against.

var tokenRe = regexp.MustCompile(`"(?:[^"]|"")*"|\b[A-Z_][A-Z0-9_$]*\b`)

var reservedKeywords = wordSet(
	"SELECT", "FROM", "WHERE", "GROUP", "ORDER", "BY", "HAVING", "LIMIT",
	"AS", "AND", "OR", "NOT", "NULL", "IS", "IN", "EXISTS", "BETWEEN",
	"LIKE", "ILIKE", "ON", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "FULL",
	"CROSS", "UNION", "ALL", "DISTINCT", "CASE", "WHEN", "THEN", "ELSE",
	"END", "ASC", "DESC", "NULLS", "FIRST", "LAST", "WITH", "OVER",
	"PARTITION", "TRUE", "FALSE", "QUALIFY", "SAMPLE", "TOP", "OFFSET",
	"FETCH", "USING", "VALUES", "INTERVAL", "LATERAL", "FLATTEN", "PIVOT",
	"UNPIVOT", "ANY", "SOME",
)

var functionNames = wordSet(
	"COUNT", "COUNT_IF", "SUM", "AVG", "MIN", "MAX", "MEDIAN", "ANY_VALUE",
	"COALESCE", "NULLIF", "IFF", "IFNULL", "NVL", "ZEROIFNULL",
	"CAST", "TRY_CAST", "TO_VARCHAR", "TO_NUMBER", "TO_DATE", "TO_TIMESTAMP",
	"ARRAY_SIZE", "ARRAY_CONTAINS", "ARRAY_TO_STRING", "PARSE_JSON",
	"GET", "GET_PATH", "OBJECT_KEYS", "LISTAGG", "SPLIT", "SPLIT_PART",
	"LOWER", "UPPER", "INITCAP", "TRIM", "LTRIM", "RTRIM", "LENGTH",
	"SUBSTR", "SUBSTRING", "REPLACE", "CONCAT", "CONCAT_WS", "LPAD", "RPAD",
	"ROUND", "FLOOR", "CEIL", "ABS", "DIV0", "GREATEST", "LEAST",
	"DATEDIFF", "DATEADD", "DATE_TRUNC", "DATE_PART", "EXTRACT",
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "SYSDATE",
	"CONVERT_TIMEZONE", "LAST_DAY", "DAYNAME", "MONTHNAME",
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "LAG", "LEAD",
	"PERCENTILE_CONT", "PERCENTILE_DISC", "HASH", "UUID_STRING",
)

var typeNames = wordSet(
	"VARCHAR", "CHAR", "STRING", "TEXT", "NUMBER", "NUMERIC", "DECIMAL",
	"INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "BYTEINT",
	"FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL", "BOOLEAN",
	"DATE", "TIME", "DATETIME", "TIMESTAMP", "TIMESTAMP_LTZ",
	"TIMESTAMP_NTZ", "TIMESTAMP_TZ", "VARIANT", "OBJECT", "ARRAY",
	"GEOGRAPHY", "BINARY", "VARBINARY",
)

var datePartKeywords = wordSet(
	"YEAR", "QUARTER", "MONTH", "WEEK", "DAY", "DAYOFWEEK", "DAYOFYEAR",
	"HOUR", "MINUTE", "SECOND", "MILLISECOND", "MICROSECOND", "NANOSECOND",
	"EPOCH", "EPOCH_SECOND", "EPOCH_MILLISECOND", "DOW", "DOY",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func denied(word string) bool {
	return reservedKeywords[word] || functionNames[word] ||
		typeNames[word] || datePartKeywords[word]
}

// Token is one identifier occurrence in a SQL text. Name carries the bare
// identifier (quotes stripped, escapes undone); Start/End delimit the full
// occurrence including any quotes.
type Token struct {
	Name   string
	Start  int
	End    int
	Quoted bool
}

// Tokenize extracts candidate identifier occurrences from a SQL text in
// textual order. Deny-listed bare words are skipped; quoted identifiers are
// always candidates because quoting marks them as identifiers explicitly.
func Tokenize(sql string) []Token {
	var tokens []Token
	for _, loc := range tokenRe.FindAllStringIndex(sql, -1) {
		raw := sql[loc[0]:loc[1]]
		if strings.HasPrefix(raw, `"`) {
			name := strings.ReplaceAll(raw[1:len(raw)-1], `""`, `"`)
			tokens = append(tokens, Token{Name: name, Start: loc[0], End: loc[1], Quoted: true})
			continue
		}
		if denied(raw) {
			continue
		}
		tokens = append(tokens, Token{Name: raw, Start: loc[0], End: loc[1]})
	}
	return tokens
}
