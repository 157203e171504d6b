package hashing

import (
	"sync"
	"sync/atomic"
)

// EvalCache memoises static evaluations by position hash. It is safe for
// concurrent use by parallel search workers.
type EvalCache struct {
	mu          sync.RWMutex
	entries     map[uint64]int
	maxCapacity int // 0 = unlimited
	hits        atomic.Int64
	misses      atomic.Int64
}

// NewEvalCache creates a new cache.
// maxCapacity of 0 means unlimited capacity.
func NewEvalCache(maxCapacity int) *EvalCache {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &EvalCache{
		entries:     make(map[uint64]int),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the cached score for hash.
func (c *EvalCache) Lookup(hash uint64) (int, bool) {
	c.mu.RLock()
	score, ok := c.entries[hash]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return score, ok
}

// Store records a score. Once the cache is full new entries are dropped;
// existing entries stay valid because evaluation is a pure function.
func (c *EvalCache) Store(hash uint64, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxCapacity > 0 && len(c.entries) >= c.maxCapacity {
		if _, ok := c.entries[hash]; !ok {
			return
		}
	}
	c.entries[hash] = score
}

// Len returns the number of cached positions.
func (c *EvalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IsFull returns true if the cache has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (c *EvalCache) IsFull() bool {
	if c.maxCapacity == 0 {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries) >= c.maxCapacity
}

// Hits returns the number of successful lookups.
func (c *EvalCache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of failed lookups.
func (c *EvalCache) Misses() int64 {
	return c.misses.Load()
}

// Clear drops every entry and resets the counters.
func (c *EvalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]int)
	c.hits.Store(0)
	c.misses.Store(0)
}
