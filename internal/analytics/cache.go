package analytics

import (
	"sync"
	"time"
)

// statsCache keeps one computed result per grouping until it expires.
// Any write to the trames table must call invalidate.
type statsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	results map[Grouping]cachedStats
}

type cachedStats struct {
	stats   []Stats
	expires time.Time
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{
		ttl:     ttl,
		now:     time.Now,
		results: map[Grouping]cachedStats{},
	}
}

func (c *statsCache) get(g Grouping) ([]Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.results[g]
	if !ok || !c.now().Before(r.expires) {
		delete(c.results, g)
		return nil, false
	}
	return r.stats, true
}

func (c *statsCache) set(g Grouping, stats []Stats) {
	c.mu.Lock()
	c.results[g] = cachedStats{stats: stats, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *statsCache) invalidate() {
	c.mu.Lock()
	clear(c.results)
	c.mu.Unlock()
}
