package layout

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

// SplitCache memoizes Layout splits with LRU eviction.
// Renderers that split the same layouts every frame use it to skip the solver.
type SplitCache struct {
	mu        sync.Mutex
	entries   map[cacheKey]*cacheEntry
	maxSize   int
	tick      uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheKey struct {
	area core.Rect
	hash uint64
}

type cacheEntry struct {
	fingerprint string // full layout key, guards against hash collisions
	segments    []core.Rect
	spacers     []core.Rect
	lastAccess  uint64
}

// DefaultCacheSize is the number of splits kept when no size is given.
const DefaultCacheSize = 500

// NewSplitCache creates a new split cache.
// maxSize is the maximum number of splits to keep (0 = unlimited, not recommended).
func NewSplitCache(maxSize int) *SplitCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &SplitCache{
		entries: make(map[cacheKey]*cacheEntry),
		maxSize: maxSize,
	}
}

// Split returns the segments of l over area, computing them on a miss.
func (c *SplitCache) Split(l Layout, area core.Rect) []core.Rect {
	segments, _ := c.SplitWithSpacers(l, area)
	return segments
}

// SplitWithSpacers returns the segments and spacers of l over area.
// The returned slices are copies and may be modified by the caller.
func (c *SplitCache) SplitWithSpacers(l Layout, area core.Rect) (segments, spacers []core.Rect) {
	fp := l.key()
	key := cacheKey{area: area, hash: hashKey(fp)}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.fingerprint == fp {
		c.tick++
		e.lastAccess = c.tick
		segments, spacers = clone(e.segments), clone(e.spacers)
		c.mu.Unlock()
		c.hits.Add(1)
		return segments, spacers
	}
	c.mu.Unlock()

	c.misses.Add(1)
	segments, spacers = l.SplitWithSpacers(area)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &cacheEntry{
		fingerprint: fp,
		segments:    clone(segments),
		spacers:     clone(spacers),
		lastAccess:  c.tick,
	}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return segments, spacers
}

// InvalidateAll clears the entire cache.
func (c *SplitCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*cacheEntry)
}

// InvalidateArea drops every split computed for area.
func (c *SplitCache) InvalidateArea(area core.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.area == area {
			delete(c.entries, k)
		}
	}
}

// evict removes the least recently used entries until under maxSize.
// Must be called with the lock held.
func (c *SplitCache) evict() {
	for len(c.entries) > c.maxSize {
		var oldest cacheKey
		var oldestTick uint64
		first := true
		for k, e := range c.entries {
			if first || e.lastAccess < oldestTick {
				oldest, oldestTick, first = k, e.lastAccess, false
			}
		}
		delete(c.entries, oldest)
		c.evictions.Add(1)
	}
}

// Size returns the number of cached entries.
func (c *SplitCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *SplitCache) Stats() CacheStats {
	size := c.Size()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets the cache statistics counters.
func (c *SplitCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int     // Current number of entries
	MaxSize   int     // Maximum entries allowed
	Hits      uint64  // Number of cache hits
	Misses    uint64  // Number of cache misses
	Evictions uint64  // Number of evicted entries
	HitRate   float64 // Hit rate (0.0 - 1.0)
}

// hashKey computes an FNV-1a hash of a layout key.
func hashKey(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func clone(rs []core.Rect) []core.Rect {
	out := make([]core.Rect, len(rs))
	copy(out, rs)
	return out
}
