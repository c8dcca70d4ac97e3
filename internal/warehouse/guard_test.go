package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQueryAllowedBlocksDDL(t *testing.T) {
	assert.False(t, IsQueryAllowed("SELECT 1; DROP TABLE users"))
}

func TestIsQueryAllowedAllowsSelectWithLiteral(t *testing.T) {
	assert.True(t, IsQueryAllowed("SELECT 'DROP TABLE users' AS note"))
}

func TestIsSelectLikeWithCTE(t *testing.T) {
	assert.True(t, IsSelectLike("WITH cte AS (SELECT 1) SELECT * FROM cte"))
}

func TestIsSelectLikeRejectsInsert(t *testing.T) {
	assert.False(t, IsSelectLike("INSERT INTO t VALUES (1)"))
}

func TestHasLimitIgnoresComments(t *testing.T) {
	assert.False(t, HasLimit("SELECT * FROM t -- LIMIT 5"))
	assert.True(t, HasLimit("SELECT * FROM t LIMIT 5"))
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "two statements",
			sql:  "SELECT 1; SELECT 2",
			want: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name: "semicolon inside literal",
			sql:  "SELECT 'a;b' AS v",
			want: []string{"SELECT 'a;b' AS v"},
		},
		{
			name: "comments removed",
			sql:  "SELECT 1 -- trailing\n; /* block */ SELECT 2",
			want: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name: "empty statements dropped",
			sql:  ";;SELECT 1;;",
			want: []string{"SELECT 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitStatements(tt.sql))
		})
	}
}

func TestCapRows(t *testing.T) {
	result := &Result{
		Columns: []string{"N"},
		Rows:    [][]any{{1}, {2}, {3}, {4}},
	}

	capped := CapRows(result, 3)
	assert.Len(t, capped.Rows, 3)

	// No-op when already under the cap.
	assert.Len(t, CapRows(result, 10).Rows, 4)
}

func TestRedactLiterals(t *testing.T) {
	sql := "SELECT * FROM users WHERE email='a@b.com' AND name='O''Brien'"
	redacted := RedactLiterals(sql)

	assert.NotContains(t, redacted, "a@b.com")
	assert.NotContains(t, redacted, "O''Brien")
	assert.Equal(t, "SELECT * FROM users WHERE email='***' AND name='***'", redacted)
}
