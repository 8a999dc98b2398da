// Package lru implements a single recency-ordered LRU engine: a hash index
// plus one intrusive doubly linked list, MRU at the front and LRU at the
// back. Grounded on IvanBrykalov-shardcache's shard.go (map + intrusive
// list + mutex) and its policy/lru policy, inlined here since a standalone
// engine needs no Hooks indirection.
package lru

import (
	"sync"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/internal/dlist"
)

type node[K comparable, V any] struct {
	key K
	val V
}

// Cache is an LRU engine (spec component C3). The zero value is not usable;
// construct with New.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]*dlist.Element[*node[K, V]]
	order    *dlist.List[*node[K, V]]
	metrics  cachekit.Metrics
	onEvict  func(K, V)
}

var _ cachekit.Cache[string, int] = (*Cache[string, int])(nil)

// Option configures ambient extension points on an engine built with New.
type Option[K comparable, V any] func(*Cache[K, V])

// WithMetrics wires an observability sink. Nil is ignored.
func WithMetrics[K comparable, V any](m cachekit.Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithOnEvict registers a callback invoked under the engine's lock whenever
// an entry is evicted to make room for a new one. Removal via Remove does
// not trigger it — only capacity-driven eviction does.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New constructs an LRU engine bounded at capacity entries. A capacity of 0
// disables admission: Put becomes a no-op and Get always misses.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	c := &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]*dlist.Element[*node[K, V]]),
		order:    dlist.New[*node[K, V]](),
		metrics:  cachekit.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or updates key. On a hit the value is overwritten and the
// entry is promoted to MRU. On a miss at capacity, the LRU entry is evicted
// first.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity == 0 {
		return
	}
	if el, ok := c.index[key]; ok {
		el.Value.val = value
		c.order.MoveToMRU(el)
		return
	}
	if len(c.index) >= c.capacity {
		c.evictLocked()
	}
	n := &node[K, V]{key: key, val: value}
	c.index[key] = c.order.PushMRU(n)
	c.metrics.Size(len(c.index))
}

// Get reports whether key is present, promoting it to MRU on a hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	c.order.MoveToMRU(el)
	c.metrics.Hit()
	return el.Value.val, true
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Contains reports whether key is present without promoting it.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key]
	return ok
}

// Remove deletes key if present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return false
	}
	c.order.Detach(el)
	delete(c.index, key)
	c.metrics.Size(len(c.index))
	return true
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[K]*dlist.Element[*node[K, V]])
	c.order.Clear()
}

// Len reports the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// evictLocked evicts the LRU entry. Caller must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	n, ok := c.order.PopLRU()
	if !ok {
		return
	}
	delete(c.index, n.key)
	c.metrics.Evict()
	if c.onEvict != nil {
		c.onEvict(n.key, n.val)
	}
}
