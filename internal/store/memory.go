package store

import (
	"sync"
	"time"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

// entry holds one memoized series and when it was computed.
type entry struct {
	points   []climate.AnnualPoint
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory memo of annual series.
type MemoryCache struct {
	mu sync.RWMutex

	// key: series key, value: memoized series
	data  map[string]entry
	order []string // insertion order, oldest first

	// retention configuration
	maxEntries int           // max number of series kept
	maxAge     time.Duration // optional max age for series

	now func() time.Time
}

// NewMemoryCache creates a new MemoryCache with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryCache(maxEntries int, maxAge time.Duration) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Put stores a series and enforces retention.
func (c *MemoryCache) Put(key string, points []climate.AnnualPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok {
		c.order = append(c.order, key)
	}
	c.data[key] = entry{points: points, storedAt: c.now()}

	// Enforce retention by count.
	if c.maxEntries > 0 && len(c.order) > c.maxEntries {
		over := len(c.order) - c.maxEntries
		for _, k := range c.order[:over] {
			delete(c.data, k)
		}
		c.order = c.order[over:]
	}
}

// Get returns a memoized series unless it is missing or expired.
func (c *MemoryCache) Get(key string) ([]climate.AnnualPoint, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	// Enforce retention by age.
	if c.maxAge > 0 && c.now().Sub(e.storedAt) > c.maxAge {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.data, key)
			c.removeFromOrder(key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.points, true
}

// Purge drops every series.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]entry)
	c.order = nil
}

// Len returns the number of cached series.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *MemoryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
