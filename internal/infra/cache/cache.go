package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache stores values under string keys with optional expiry.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	// DeletePrefix drops every entry whose key starts with prefix.
	DeletePrefix(prefix string)
}

type entry struct {
	value    any
	expireAt time.Time
}

// TTLCache is an in-memory Cache with per-entry expiry. Expired entries are
// dropped lazily on read.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]entry
	clock func() time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{items: make(map[string]entry), clock: time.Now}
}

// NewTTLCacheWithClock injects a clock for tests.
func NewTTLCacheWithClock(clock func() time.Time) *TTLCache {
	return &TTLCache{items: make(map[string]entry), clock: clock}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expireAt.IsZero() && !c.clock().Before(item.expireAt) {
		c.Delete(key)
		return nil, false
	}
	return item.value, true
}

// Set stores a value. A non-positive ttl stores it without expiry.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	item := entry{value: value}
	if ttl > 0 {
		item.expireAt = c.clock().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *TTLCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}

var _ Cache = (*TTLCache)(nil)
