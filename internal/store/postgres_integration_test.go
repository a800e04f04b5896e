//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	p, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)

	_, _ = p.pool.Exec(ctx, "DELETE FROM contact_messages WHERE email LIKE '%@test.example.com'")
	_, _ = p.pool.Exec(ctx, "DELETE FROM visits WHERE path LIKE '/integration-test%'")
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestIntegration_PostgresMessages(t *testing.T) {
	p := getTestPostgres(t)
	ctx := context.Background()

	m := &Message{Name: "Ann", Email: "ann@test.example.com", Subject: "Hi", Message: "Integration message", Lang: "en"}
	require.NoError(t, p.SaveMessage(ctx, m))

	messages, err := p.ListMessages(ctx, 50)
	require.NoError(t, err)

	var found bool
	for _, got := range messages {
		if got.ID == m.ID {
			found = true
			assert.Equal(t, "Integration message", got.Message)
		}
	}
	assert.True(t, found)
}

func TestIntegration_PostgresPurge(t *testing.T) {
	p := getTestPostgres(t)
	ctx := context.Background()

	require.NoError(t, p.RecordVisit(ctx, Visit{HashedIP: "x", Path: "/integration-test", At: time.Now().Add(-400 * 24 * time.Hour)}))
	removed, err := p.PurgeVisits(ctx, time.Now().Add(-VisitRetention))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))
}
