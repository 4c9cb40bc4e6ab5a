package tilecache

import "github.com/prosepane/prosepane/internal/doc"

// Cache is the main-thread-exclusive tile store plus in-flight set. It is
// not safe for concurrent use: it stays main-thread-exclusive so the
// prefetch worker never touches it directly, only ever talking to the
// main thread over the request/response channels in Worker.
type Cache struct {
	entries  map[int]doc.TilePNGPair
	inFlight map[int]struct{}
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]doc.TilePNGPair), inFlight: make(map[int]struct{})}
}

// Get returns the cached pair for idx, if present.
func (c *Cache) Get(idx int) (doc.TilePNGPair, bool) {
	pair, ok := c.entries[idx]
	return pair, ok
}

// Insert stores pair under idx and evicts any entry farther than
// evictDistance from current.
func (c *Cache) Insert(idx int, pair doc.TilePNGPair, current, evictDistance int) {
	c.entries[idx] = pair
	c.evict(current, evictDistance)
}

func (c *Cache) evict(current, evictDistance int) {
	for idx := range c.entries {
		if abs(idx-current) > evictDistance {
			delete(c.entries, idx)
		}
	}
}

// MarkInFlight records idx as requested but not yet received.
func (c *Cache) MarkInFlight(idx int) { c.inFlight[idx] = struct{}{} }

// ClearInFlight removes idx from the in-flight set (called when a
// response is received, before the result is inserted into the cache).
func (c *Cache) ClearInFlight(idx int) { delete(c.inFlight, idx) }

// IsInFlight reports whether idx has an outstanding prefetch request.
func (c *Cache) IsInFlight(idx int) bool {
	_, ok := c.inFlight[idx]
	return ok
}

// ShouldRequest reports whether idx should be dispatched for prefetch:
// neither cached nor already in flight (the "Dispatch rule" rule).
func (c *Cache) ShouldRequest(idx int) bool {
	if _, ok := c.entries[idx]; ok {
		return false
	}
	return !c.IsInFlight(idx)
}

// Quiescent reports whether the in-flight set is disjoint from the cache,
// the invariant this requires "at all quiescent points (after
// draining responses)".
func (c *Cache) Quiescent() bool {
	for idx := range c.inFlight {
		if _, ok := c.entries[idx]; ok {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
