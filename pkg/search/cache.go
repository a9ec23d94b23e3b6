package search

import (
	"sync"

	"github.com/six-chamber/roulette/pkg/engine"
)

// cacheEntry is a memoized score at the depth it was computed to; a lookup
// only counts as a hit when the cached depth at least covers what the
// caller is asking for.
type cacheEntry struct {
	score float64
	depth int
}

// transpositionCache memoizes expectiminimax scores keyed on
// engine.StateKey, the plain comparable projection of a State's identity.
// Using StateKey directly as the map key means Go's own map implementation
// supplies the hashing and equality; no bespoke hash function is needed
// here; State.Hash exists purely for external diagnostics/log correlation.
//
// The cache is a pure speed optimization: a miss or a capacity-triggered
// eviction never changes search correctness, only how much work is
// repeated.
type transpositionCache struct {
	mu       sync.Mutex
	entries  map[engine.StateKey]cacheEntry
	capacity int
}

func newTranspositionCache(capacity int) *transpositionCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &transpositionCache{
		entries:  make(map[engine.StateKey]cacheEntry, min(capacity, 1<<16)),
		capacity: capacity,
	}
}

// lookup returns the cached score for key if one exists at depth >=
// requestedDepth.
func (c *transpositionCache) lookup(key engine.StateKey, requestedDepth int) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.depth < requestedDepth {
		return 0, false
	}
	return entry.score, true
}

// store records score as having been computed to depth. Entries are
// freely replaced with no strict LRU policy: once at capacity, a new
// unique key is simply not stored, favoring whatever populated the cache
// first over perfect recency.
func (c *transpositionCache) store(key engine.StateKey, score float64, depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok && existing.depth >= depth {
		return
	}
	if len(c.entries) >= c.capacity {
		return
	}
	c.entries[key] = cacheEntry{score: score, depth: depth}
}

// size reports the number of memoized entries. No search path calls it.
func (c *transpositionCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
