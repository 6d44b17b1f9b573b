package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "harvest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, Entry{
		Subject: "cs.SE", Date: "2024-01-01", Papers: 7,
		Path: "data/cs.SE.2024-01-01.jsonl", Status: "saved", FetchedAt: older,
	}))
	require.NoError(t, s.Record(ctx, Entry{
		Subject: "cs.DC", Date: "2024-01-02", Papers: 3,
		Path: "data/cs.DC.2024-01-02.jsonl", Status: "saved", FetchedAt: newer,
	}))

	entries, err := s.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "cs.DC", entries[0].Subject)
	assert.Equal(t, "cs.SE", entries[1].Subject)
	assert.Equal(t, 7, entries[1].Papers)
	assert.True(t, entries[0].FetchedAt.Equal(newer))
}

func TestRecordUpsertsSameSubjectAndDate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{
		Subject: "cs.SE", Date: "2024-01-02", Papers: 5, Status: "saved",
	}))
	require.NoError(t, s.Record(ctx, Entry{
		Subject: "cs.SE", Date: "2024-01-02", Papers: 5, Status: "skipped",
	}))

	entries, err := s.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "skipped", entries[0].Status)
}

func TestRecentFiltersBySubject(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{Subject: "cs.SE", Date: "2024-01-01", Papers: 1, Status: "saved"}))
	require.NoError(t, s.Record(ctx, Entry{Subject: "cs.DC", Date: "2024-01-01", Papers: 2, Status: "saved"}))

	entries, err := s.Recent(ctx, "cs.SE", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cs.SE", entries[0].Subject)
}

func TestRecentLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Entry{
			Subject:   "cs.SE",
			Date:      base.AddDate(0, 0, i).Format("2006-01-02"),
			Papers:    i,
			Status:    "saved",
			FetchedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := s.Recent(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
