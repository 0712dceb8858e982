package settings

import (
	"sync"
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

// ttlCache holds resolved effective settings per department key. The clock
// is injected so expiry is testable. Entries are invalidated explicitly on
// settings writes; the TTL only bounds staleness across processes.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	value     settings.Effective
	expiresAt time.Time
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *ttlCache) get(key string) (settings.Effective, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return settings.Effective{}, false
	}
	return entry.value, true
}

func (c *ttlCache) set(key string, value settings.Effective) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// invalidate drops one department key; an empty key drops everything, since
// every department entry embeds the global document.
func (c *ttlCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == "" {
		c.entries = make(map[string]cacheEntry)
		return
	}
	delete(c.entries, key)
}
