package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_SaveAndListMessages(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	older := &Message{Name: "Ann", Email: "ann@example.com", Subject: "Hi", Message: "First message", Lang: "en",
		CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Message{Name: "Bob", Email: "bob@example.com", Subject: "Yo", Message: "Second message", Lang: "fr"}

	require.NoError(t, s.SaveMessage(ctx, older))
	require.NoError(t, s.SaveMessage(ctx, newer))
	assert.NotEqual(t, uuid.Nil, newer.ID)
	assert.False(t, newer.CreatedAt.IsZero())

	messages, err := s.ListMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Bob", messages[0].Name)
	assert.Equal(t, newer.ID, messages[0].ID)
	assert.Equal(t, "fr", messages[0].Lang)
	assert.Equal(t, "Ann", messages[1].Name)

	limited, err := s.ListMessages(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_VisitStats(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	visits := []Visit{
		{HashedIP: "aaaa", Path: "/", Lang: "en"},
		{HashedIP: "aaaa", Path: "/projects", Lang: "en"},
		{HashedIP: "bbbb", Path: "/", Lang: "fr"},
		{HashedIP: "cccc", Path: "/", Lang: "en", At: time.Now().Add(-90 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}

	stats, err := s.VisitStats(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.Days)
	assert.Equal(t, 3, stats.TotalVisits)
	assert.Equal(t, 2, stats.UniqueVisitors)
	require.Len(t, stats.TopPaths, 2)
	assert.Equal(t, PathCount{Path: "/", Count: 2}, stats.TopPaths[0])

	defaulted, err := s.VisitStats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, defaulted.Days)
}

func TestSQLite_PurgeVisits(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "old", Path: "/", At: time.Now().Add(-400 * 24 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "new", Path: "/"}))

	removed, err := s.PurgeVisits(ctx, time.Now().Add(-VisitRetention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err := s.VisitStats(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVisits)
}

func TestOpen_SelectsBackendFromScheme(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	_, ok := st.(*SQLite)
	assert.True(t, ok)
	require.NoError(t, st.Close())

	_, err = Open(ctx, "mysql://localhost/db")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}
