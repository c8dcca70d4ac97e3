package history

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entryAt(started time.Time, status string) Entry {
	return Entry{
		QueryID:     uuid.NewString(),
		SQL:         "SELECT COUNT(*) FROM assets",
		Database:    "DB",
		Schema:      "PUBLIC",
		Status:      status,
		RowCount:    1,
		StartedAt:   started,
		CompletedAt: started.Add(200 * time.Millisecond),
		DurationMS:  200,
	}
}

func TestAddAndList(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Add(entryAt(base, StatusSuccess)))
	require.NoError(t, s.Add(entryAt(base.Add(time.Minute), StatusFailed)))
	require.NoError(t, s.Add(entryAt(base.Add(2*time.Minute), StatusSuccess)))

	entries, total, err := s.List(10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)

	// Newest first.
	assert.True(t, entries[0].StartedAt.After(entries[1].StartedAt))
	assert.True(t, entries[1].StartedAt.After(entries[2].StartedAt))
}

func TestListStatusFilter(t *testing.T) {
	s := openStore(t)
	base := time.Now().UTC()

	require.NoError(t, s.Add(entryAt(base, StatusSuccess)))
	require.NoError(t, s.Add(entryAt(base.Add(time.Second), StatusFailed)))

	entries, total, err := s.List(10, 0, StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, StatusFailed, entries[0].Status)
}

func TestListPaging(t *testing.T) {
	s := openStore(t)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(entryAt(base.Add(time.Duration(i)*time.Second), StatusSuccess)))
	}

	page, total, err := s.List(2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}

func TestAddRedactsLiterals(t *testing.T) {
	s := openStore(t)

	e := entryAt(time.Now().UTC(), StatusSuccess)
	e.SQL = "SELECT * FROM users WHERE email='a@b.com' AND name='O''Brien'"
	require.NoError(t, s.Add(e))

	entries, _, err := s.List(1, 0, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.NotContains(t, entries[0].SQL, "a@b.com")
	assert.NotContains(t, entries[0].SQL, "O''Brien")
	assert.Equal(t, 2, strings.Count(entries[0].SQL, "'***'"))
}

func TestClear(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Add(entryAt(time.Now().UTC(), StatusSuccess)))
	require.NoError(t, s.Clear())

	entries, total, err := s.List(10, 0, "")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}
