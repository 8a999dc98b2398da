// Package lruk implements LRU-K: a key is only admitted into the main cache
// once it has been observed K times. Until then, observations are tracked in
// a separate history list so a single burst of one-off accesses cannot flush
// out entries with a real recurring access pattern. Grounded on
// original_source/include/myLru.h's myKLruCache, composed here from two
// lru.Cache instances rather than a bespoke counting list.
package lruk

import (
	"sync"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/lru"
)

// Cache is an LRU-K engine (spec component C4). The zero value is not
// usable; construct with New.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	k int

	main    *lru.Cache[K, V]
	history *lru.Cache[K, int] // key -> observation count, LRU-ordered
	staging map[K]V            // values seen before promotion to main

	metrics cachekit.Metrics
	onEvict func(K, V)
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
// an entry is evicted from the main cache to make room for a promotion.
// Entries that never graduate past the history list do not trigger it.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New constructs an LRU-K engine. capacity bounds the main cache;
// historyCapacity bounds the history list tracking sub-threshold
// observations. k is the number of observations required before a key is
// promoted into main; values less than 1 are clamped to 1, at which point
// the engine behaves exactly like plain LRU.
func New[K comparable, V any](capacity, historyCapacity, k int, opts ...Option[K, V]) *Cache[K, V] {
	if k < 1 {
		k = 1
	}
	c := &Cache[K, V]{
		k:       k,
		staging: make(map[K]V),
		metrics: cachekit.NoopMetrics{},
	}
	c.history = lru.New[K, int](historyCapacity, lru.WithOnEvict[K, int](func(key K, _ int) {
		delete(c.staging, key)
	}))
	for _, opt := range opts {
		opt(c)
	}
	c.main = lru.New[K, V](capacity, lru.WithOnEvict[K, V](func(key K, val V) {
		c.metrics.Evict()
		if c.onEvict != nil {
			c.onEvict(key, val)
		}
	}))
	return c
}

// Put records an observation of key with value. The first K-1 observations
// only update history and staging; the Kth promotes the key into main,
// evicting from main if it is full. An observation of a key already in main
// overwrites its value and touches it exactly like a hit.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.main.Get(key); ok {
		c.main.Put(key, value)
		return
	}
	c.observeLocked(key, value)
}

// Get reports whether key is present in main, promoting it on a hit exactly
// as LRU does. A miss in main still counts as an observation against the
// history/staging machinery — LRU-K tracks history on read misses by
// design, since reads are how most real workloads reveal recurrence.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.main.Get(key); ok {
		c.metrics.Hit()
		return v, true
	}
	c.metrics.Miss()
	if v, staged := c.staging[key]; staged {
		c.observeLocked(key, v)
	} else {
		count, _ := c.history.Get(key)
		c.history.Put(key, count+1)
	}
	var zero V
	return zero, false
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Contains reports whether key is resident in main, without touching
// history, staging, or recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Contains(key)
}

// Remove deletes key from main, history, and staging. It reports whether
// key was present in main.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := c.main.Remove(key)
	c.history.Remove(key)
	delete(c.staging, key)
	return removed
}

// Clear drops every entry from main, history, and staging.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main.Clear()
	c.history.Clear()
	c.staging = make(map[K]V)
}

// Len reports the number of entries resident in main. Keys still
// accumulating observations in history are not counted.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

// observeLocked records one observation of key/value against history and
// promotes it into main once it reaches the K threshold. Caller must hold
// c.mu.
func (c *Cache[K, V]) observeLocked(key K, value V) {
	c.staging[key] = value

	count, seen := c.history.Get(key)
	count++
	if !seen {
		count = 1
	}

	if count >= c.k {
		c.history.Remove(key)
		delete(c.staging, key)
		c.main.Put(key, value)
		c.metrics.Size(c.main.Len())
		return
	}
	c.history.Put(key, count)
}
