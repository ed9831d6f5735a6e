package beaches

import (
	"sync"
	"time"
)

// cacheEntry is an immutable (value, expiry) pair. Entries are overwritten
// wholesale on refresh, never mutated in place, so readers need no copy.
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// ttlCache is the client's in-process response cache, keyed by endpoint and
// parameters. It is the only shared state across concurrent generation
// requests and must tolerate simultaneous reads and writes.
//
// Stale entries are retained past their TTL on purpose: when a live call
// fails, GetStale serves the last known value before the client surfaces an
// upstream failure.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newTTLCache() *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if it exists and is still fresh.
func (c *ttlCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// GetStale returns the cached value for key regardless of freshness.
func (c *ttlCache) GetStale(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

// Set stores a value under key with the given TTL, replacing any prior entry.
func (c *ttlCache) Set(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
}
