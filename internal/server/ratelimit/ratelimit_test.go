package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l.now = clock.now
	return l, clock
}

func TestForSite(t *testing.T) {
	cfg := ForSite(5, 3)
	require.True(t, cfg.Enabled)
	require.Len(t, cfg.Rules, 2)

	contact := Match("POST", "/contact", cfg.Rules)
	require.NotNil(t, contact)
	assert.Equal(t, 5, contact.Limit)
	assert.Equal(t, time.Hour, contact.Window)

	login := Match("POST", "/admin/login", cfg.Rules)
	require.NotNil(t, login)
	assert.Equal(t, time.Minute, login.Window)

	assert.Nil(t, Match("GET", "/contact", cfg.Rules))
}

func TestForSite_ZeroLimitsDisable(t *testing.T) {
	cfg := ForSite(0, 0)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Rules)
}

func TestMatch_Prefix(t *testing.T) {
	rules := []Rule{{Method: "POST", Path: "/admin/", Limit: 1, Window: time.Minute}}
	assert.NotNil(t, Match("POST", "/admin/login", rules))
	assert.Nil(t, Match("POST", "/admin", rules))
	assert.Nil(t, Match("GET", "/admin/login", rules))
}

func TestLimiter_BlocksAfterLimit(t *testing.T) {
	l, _ := newTestLimiter(t, ForSite(3, 0))

	for i := 0; i < 3; i++ {
		ok, info := l.Allow("1.2.3.4", "POST", "/contact")
		require.True(t, ok, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	ok, info := l.Allow("1.2.3.4", "POST", "/contact")
	assert.False(t, ok)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 20*time.Minute)
}

func TestLimiter_Refills(t *testing.T) {
	l, clock := newTestLimiter(t, ForSite(0, 2))

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow("c", "POST", "/admin/login")
		require.True(t, ok)
	}
	ok, _ := l.Allow("c", "POST", "/admin/login")
	require.False(t, ok)

	clock.advance(31 * time.Second)
	ok, _ = l.Allow("c", "POST", "/admin/login")
	assert.True(t, ok)
	ok, _ = l.Allow("c", "POST", "/admin/login")
	assert.False(t, ok)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, ForSite(1, 0))

	ok, _ := l.Allow("a", "POST", "/contact")
	require.True(t, ok)
	ok, _ = l.Allow("a", "POST", "/contact")
	require.False(t, ok)

	ok, _ = l.Allow("b", "POST", "/contact")
	assert.True(t, ok)
}

func TestLimiter_UnmatchedAndAllowlisted(t *testing.T) {
	cfg := ForSite(1, 0)
	cfg.Allowlist["trusted"] = true
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 10; i++ {
		ok, info := l.Allow("x", "GET", "/")
		require.True(t, ok)
		assert.Zero(t, info.Limit)

		ok, _ = l.Allow("trusted", "POST", "/contact")
		require.True(t, ok)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, Rules: ForSite(1, 1).Rules})
	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("x", "POST", "/contact")
		assert.True(t, ok)
	}
}

func TestLimiter_Burst(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, Rules: []Rule{
		{Method: "POST", Path: "/contact", Limit: 60, Window: time.Minute, Burst: 2},
	}})

	ok, _ := l.Allow("x", "POST", "/contact")
	require.True(t, ok)
	ok, _ = l.Allow("x", "POST", "/contact")
	require.True(t, ok)
	ok, _ = l.Allow("x", "POST", "/contact")
	assert.False(t, ok)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, ForSite(50, 0))

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("same", "POST", "/contact"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(50), allowed.Load())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	cfg := ForSite(5, 0)
	cfg.IdleAfter = time.Hour
	l, clock := newTestLimiter(t, cfg)

	l.Allow("old", "POST", "/contact")
	clock.advance(2 * time.Hour)
	l.Allow("new", "POST", "/contact")

	assert.Equal(t, 1, l.cleanup())
	assert.Len(t, l.buckets, 1)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(ForSite(1, 1))
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
