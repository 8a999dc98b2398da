// Package lfu implements a frequency-bucketed LFU engine: a hash index, a
// map from access count to a bucket list ordered by insertion time, a
// min-frequency pointer, and a periodic aging pass that lowers every access
// count by half the configured threshold when the running average exceeds it. Grounded
// on original_source/include/myLfu.h's myLfuCache/handleOverMaxAverageNum,
// with the bucket lists built on internal/dlist rather than raw pointers.
package lfu

import (
	"sync"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/internal/dlist"
)

const defaultMaxAverage = 1_000_000

type entry[K comparable, V any] struct {
	key  K
	val  V
	freq int
}

// Cache is an LFU engine (spec component C5). The zero value is not usable;
// construct with New.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity   int
	maxAverage int

	index   map[K]*dlist.Element[*entry[K, V]]
	buckets map[int]*dlist.List[*entry[K, V]]
	minFreq int

	totalAccesses int

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
// an entry is evicted to make room for a new one.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New constructs an LFU engine bounded at capacity entries. maxAverage is
// the aging threshold (§4.4): once total-accesses/entry-count exceeds it, an
// aging sweep runs. A maxAverage of 0 selects the default of 1,000,000.
func New[K comparable, V any](capacity int, maxAverage int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if maxAverage <= 0 {
		maxAverage = defaultMaxAverage
	}
	c := &Cache[K, V]{
		capacity:   capacity,
		maxAverage: maxAverage,
		index:      make(map[K]*dlist.Element[*entry[K, V]]),
		buckets:    make(map[int]*dlist.List[*entry[K, V]]),
		metrics:    cachekit.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or updates key. On a hit the value is overwritten and the
// entry is touched (frequency bumped). On a miss at capacity, the
// min-frequency, oldest-in-bucket entry is evicted first.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity == 0 {
		return
	}
	if el, ok := c.index[key]; ok {
		el.Value.val = value
		c.touchLocked(el)
		c.afterAccessLocked()
		return
	}
	if len(c.index) >= c.capacity {
		c.evictLocked()
	}
	e := &entry[K, V]{key: key, val: value, freq: 1}
	bucket := c.bucketLocked(1)
	c.index[key] = bucket.PushMRU(e)
	c.minFreq = 1
	c.metrics.Size(len(c.index))
	c.afterAccessLocked()
}

// Get reports whether key is present, touching it (frequency bump) on a
// hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	c.touchLocked(el)
	c.metrics.Hit()
	c.afterAccessLocked()
	return el.Value.val, true
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Contains reports whether key is present without touching frequency.
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
	c.detachLocked(el)
	delete(c.index, key)
	c.metrics.Size(len(c.index))
	return true
}

// Clear drops every entry and resets frequency bookkeeping.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[K]*dlist.Element[*entry[K, V]])
	c.buckets = make(map[int]*dlist.List[*entry[K, V]])
	c.minFreq = 0
	c.totalAccesses = 0
}

// Len reports the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Stats is a read-only snapshot of the engine's internal bookkeeping, taken
// under the lock.
type Stats struct {
	MinFreq       int
	AverageAccess float64
}

// Stats returns a snapshot of the engine's current frequency bookkeeping.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	avg := 0.0
	if n := len(c.index); n > 0 {
		avg = float64(c.totalAccesses) / float64(n)
	}
	return Stats{MinFreq: c.minFreq, AverageAccess: avg}
}

// bucketLocked returns (creating if needed) the bucket list for freq.
// Caller must hold c.mu.
func (c *Cache[K, V]) bucketLocked(freq int) *dlist.List[*entry[K, V]] {
	b, ok := c.buckets[freq]
	if !ok {
		b = dlist.New[*entry[K, V]]()
		c.buckets[freq] = b
	}
	return b
}

// touchLocked moves el's entry from its current bucket to bucket f+1,
// advancing min-frequency if the old bucket emptied out and was the
// minimum. Caller must hold c.mu.
func (c *Cache[K, V]) touchLocked(el *dlist.Element[*entry[K, V]]) {
	e := el.Value
	oldFreq := e.freq
	oldBucket := c.buckets[oldFreq]
	oldBucket.Detach(el)
	if oldBucket.Len() == 0 {
		delete(c.buckets, oldFreq)
		if oldFreq == c.minFreq {
			c.minFreq = oldFreq + 1
		}
	}
	e.freq = oldFreq + 1
	newBucket := c.bucketLocked(e.freq)
	c.index[e.key] = newBucket.PushMRU(e)
}

// detachLocked removes el from its bucket without reinserting it anywhere,
// for use by Remove and eviction. Caller must hold c.mu.
func (c *Cache[K, V]) detachLocked(el *dlist.Element[*entry[K, V]]) *entry[K, V] {
	e := el.Value
	bucket := c.buckets[e.freq]
	bucket.Detach(el)
	if bucket.Len() == 0 {
		delete(c.buckets, e.freq)
		if e.freq == c.minFreq {
			c.recomputeMinFreqLocked()
		}
	}
	return e
}

// evictLocked evicts the oldest entry in the min-frequency bucket. Caller
// must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	bucket, ok := c.buckets[c.minFreq]
	if !ok || bucket.Len() == 0 {
		c.recomputeMinFreqLocked()
		bucket, ok = c.buckets[c.minFreq]
		if !ok {
			return
		}
	}
	e, ok := bucket.PopLRU()
	if !ok {
		return
	}
	delete(c.index, e.key)
	if bucket.Len() == 0 {
		delete(c.buckets, c.minFreq)
		c.recomputeMinFreqLocked()
	}
	c.metrics.Evict()
	if c.onEvict != nil {
		c.onEvict(e.key, e.val)
	}
}

// recomputeMinFreqLocked scans for the smallest populated bucket key.
// Caller must hold c.mu.
func (c *Cache[K, V]) recomputeMinFreqLocked() {
	if len(c.index) == 0 {
		c.minFreq = 0
		return
	}
	min := -1
	for f, b := range c.buckets {
		if b.Len() == 0 {
			continue
		}
		if min == -1 || f < min {
			min = f
		}
	}
	if min == -1 {
		min = 1
	}
	c.minFreq = min
}

// afterAccessLocked bumps the access counter and runs an aging sweep if the
// running average now exceeds the configured threshold. Caller must hold
// c.mu.
func (c *Cache[K, V]) afterAccessLocked() {
	c.totalAccesses++
	n := len(c.index)
	if n == 0 {
		return
	}
	if c.totalAccesses/n > c.maxAverage {
		c.ageLocked()
	}
}

// ageLocked lowers every entry's access count by maxAverage/2 (floor at
// 1), rebuckets everything, and recomputes min-frequency. It also resets
// total-accesses to the new post-sweep sum so the average reflects the
// aged state rather than re-triggering on the next call. Caller must hold
// c.mu.
func (c *Cache[K, V]) ageLocked() {
	half := c.maxAverage / 2
	if half < 1 {
		half = 1
	}
	entries := make([]*entry[K, V], 0, len(c.index))
	for _, el := range c.index {
		entries = append(entries, el.Value)
	}
	c.buckets = make(map[int]*dlist.List[*entry[K, V]])
	sum := 0
	for _, e := range entries {
		newCount := e.freq - half
		if newCount < 1 {
			newCount = 1
		}
		e.freq = newCount
		sum += newCount
		bucket := c.bucketLocked(newCount)
		c.index[e.key] = bucket.PushMRU(e)
	}
	c.totalAccesses = sum
	c.recomputeMinFreqLocked()
}
