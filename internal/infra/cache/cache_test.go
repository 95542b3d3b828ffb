package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"casita/internal/infra/cache"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	c := cache.NewTTLCacheWithClock(func() time.Time { return now })

	c.Set("metrics", 42, time.Minute)

	got, ok := c.Get("metrics")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	now = now.Add(time.Minute)
	_, ok = c.Get("metrics")
	assert.False(t, ok, "entries expire once the ttl elapses")

	_, ok = c.Get("metrics")
	assert.False(t, ok, "expired entries stay gone")
}

func TestTTLCacheNoExpiry(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	c := cache.NewTTLCacheWithClock(func() time.Time { return now })

	c.Set("pinned", "value", 0)
	now = now.Add(240 * time.Hour)

	got, ok := c.Get("pinned")
	assert.True(t, ok, "non-positive ttl stores without expiry")
	assert.Equal(t, "value", got)
}

func TestTTLCacheDelete(t *testing.T) {
	c := cache.NewTTLCache()

	c.Set("k", 1, 0)
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Delete("missing")
}

func TestTTLCacheDeletePrefix(t *testing.T) {
	c := cache.NewTTLCache()

	c.Set("forecast:1:30", "a", 0)
	c.Set("forecast:1:90", "b", 0)
	c.Set("forecast:2:30", "c", 0)

	c.DeletePrefix("forecast:1:")

	_, ok := c.Get("forecast:1:30")
	assert.False(t, ok)
	_, ok = c.Get("forecast:1:90")
	assert.False(t, ok)
	_, ok = c.Get("forecast:2:30")
	assert.True(t, ok, "other prefixes survive")
}

func TestTTLCacheOverwrite(t *testing.T) {
	c := cache.NewTTLCache()

	c.Set("k", 1, 0)
	c.Set("k", 2, 0)

	got, _ := c.Get("k")
	assert.Equal(t, 2, got)
}
