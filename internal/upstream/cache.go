package upstream

import (
	"sync"
	"time"

	"dexScope/internal/columnar"
)

type cacheEntry struct {
	tables  []columnar.Table
	expires time.Time
}

// ttlCache is a small in-memory response cache. Entries expire after their
// TTL; expired entries are dropped on read.
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

func (c *ttlCache) Get(key string) ([]columnar.Table, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.tables, true
}

func (c *ttlCache) Set(key string, tables []columnar.Table, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{tables: tables, expires: c.now().Add(ttl)}
	c.mu.Unlock()
}
