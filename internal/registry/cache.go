package registry

import (
	"sync"
	"time"

	"github.com/studiowebux/crateview/internal/types"
)

// cacheEntry holds a crate detail and when it was fetched
type cacheEntry struct {
	detail    types.CrateDetail
	fetchedAt time.Time
}

// detailCache is a thread-safe TTL cache of crate details keyed by name
type detailCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newDetailCache(ttl time.Duration) *detailCache {
	return &detailCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached detail if present and fresh
func (c *detailCache) get(name string) (types.CrateDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[name]
	if !exists {
		return types.CrateDetail{}, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return types.CrateDetail{}, false
	}
	return entry.detail, true
}

func (c *detailCache) set(name string, detail types.CrateDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = &cacheEntry{
		detail:    detail,
		fetchedAt: c.now(),
	}
}

func (c *detailCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, name)
}
