package warehouse

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)--.*?$`)
	limitRe        = regexp.MustCompile(`(?i)\bLIMIT\s+\d+`)
)

// selectLikeKeywords are the leading keywords of statements the guard treats
// as read-only.
var selectLikeKeywords = map[string]bool{
	"SELECT":   true,
	"WITH":     true,
	"SHOW":     true,
	"DESCRIBE": true,
	"DESC":     true,
	"EXPLAIN":  true,
}

// StripComments removes block and line comments. String literals are not
// protected here; callers that care about literals use SplitStatements, which
// tracks quoting.
func StripComments(sql string) string {
	sql = blockCommentRe.ReplaceAllString(sql, "")
	return lineCommentRe.ReplaceAllString(sql, "")
}

// SplitStatements splits SQL text into individual statements, handling line
// and block comments, single- and double-quoted literals, and semicolon
// separators. Empty statements are dropped.
func SplitStatements(sql string) []string {
	sql = StripComments(sql)

	var statements []string
	var current strings.Builder
	inString := false
	var stringChar byte

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case (ch == '\'' || ch == '"') && !inString:
			inString = true
			stringChar = ch
			current.WriteByte(ch)
		case inString && ch == stringChar:
			inString = false
			current.WriteByte(ch)
		case ch == ';' && !inString:
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	// The last statement may not end with a semicolon.
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// CountStatements counts the statements in a SQL text.
func CountStatements(sql string) int {
	return len(SplitStatements(sql))
}

// IsSelectLike reports whether a single statement starts with a read-only
// keyword (SELECT, WITH, SHOW, DESCRIBE, EXPLAIN).
func IsSelectLike(stmt string) bool {
	trimmed := strings.TrimSpace(StripComments(stmt))
	if trimmed == "" {
		return false
	}
	fields := strings.Fields(trimmed)
	return selectLikeKeywords[strings.ToUpper(fields[0])]
}

// IsQueryAllowed reports whether every statement in the text is read-only.
// DDL/DML hidden behind a leading SELECT ("SELECT 1; DROP TABLE t") is
// rejected; DDL keywords inside string literals are not.
func IsQueryAllowed(sql string) bool {
	statements := SplitStatements(sql)
	if len(statements) == 0 {
		return false
	}
	for _, stmt := range statements {
		if !IsSelectLike(stmt) {
			return false
		}
	}
	return true
}

// HasLimit reports whether the statement carries a LIMIT clause, ignoring any
// LIMIT that only appears inside a comment.
func HasLimit(sql string) bool {
	return limitRe.MatchString(StripComments(sql))
}

// CapRows truncates a result to at most maxRows rows.
func CapRows(result *Result, maxRows int) *Result {
	if result == nil || maxRows <= 0 || len(result.Rows) <= maxRows {
		return result
	}
	return &Result{Columns: result.Columns, Rows: result.Rows[:maxRows]}
}
