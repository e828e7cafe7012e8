// Package cache provides a generic fixed-capacity LRU used by the
// normalization facade to memoize results keyed by the raw input path. It
// is a reusable data structure with no knowledge of path semantics.
package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	internal "github.com/ZanzyTHEbar/winpath/winpath"

	assert "github.com/ZanzyTHEbar/assert-lib"
)

// Stats tracks cache performance counters.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LRU is a mutex-guarded, fixed-capacity cache with least-recently-used
// eviction. A hit promotes the entry to most-recently-used; an insert that
// would exceed capacity evicts exactly the least-recently-used entry.
// All methods are safe for concurrent use; readers never observe a
// partially-written entry because every access holds the lock.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	order     *list.List // front = most recently used
	items     map[K]*list.Element
	hits      uint64
	misses    uint64
	evictions uint64
	asserts   *assert.AssertHandler
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU with the given capacity. A non-positive capacity
// falls back to the engine default.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = internal.DefaultCacheCapacity
	}
	return &LRU[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
		asserts:  assert.NewAssertHandler(),
	}
}

// Get returns the cached value for key and promotes it to most recently
// used. The second return is false on a miss.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return elem.Value.(*entry[K, V]).value, true
}

// Put inserts or updates the value for key. An update promotes the entry;
// an insert over capacity evicts the least-recently-used entry first.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(elem)
		c.checkIntegrity()
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	c.checkIntegrity()
}

// Remove deletes key from the cache. It reports whether the key was
// present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	return true
}

// Len returns the current number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured maximum entry count.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Clear removes every entry, keeping the hit/miss counters.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[K]*list.Element, c.capacity)
}

// Stats returns a snapshot of the cache counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      c.order.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// evictOldest drops the back of the recency list. Caller holds the lock.
func (c *LRU[K, V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*entry[K, V]).key)
	c.evictions++
}

// checkIntegrity asserts the map and recency list agree. A divergence is a
// defect in this package, not a user-facing error. Caller holds the lock.
func (c *LRU[K, V]) checkIntegrity() {
	c.asserts.Assert(context.Background(), c.order.Len() == len(c.items),
		fmt.Sprintf("lru map/list divergence: list=%d map=%d", c.order.Len(), len(c.items)))
	c.asserts.Assert(context.Background(), c.order.Len() <= c.capacity,
		fmt.Sprintf("lru over capacity: len=%d cap=%d", c.order.Len(), c.capacity))
}
