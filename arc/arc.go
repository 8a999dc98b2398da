// Package arc implements the Adaptive Replacement Cache: a recency half
// (T1), a frequency half (T2), and a ghost FIFO behind each half (B1, B2)
// that bias an adaptive split between the halves. Grounded on
// nwaimo-arc-cache/arc/arc.go for the admission/promotion state machine and
// original_source/include/myArcCache.h + myArcLruCachePart.h/myArcLfuCachePart.h
// for the ghost-driven capacity shift.
package arc

import (
	"sync"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/internal/dlist"
)

const defaultPromotionThreshold = 3

type mainEntry[K comparable, V any] struct {
	key   K
	val   V
	count int
}

// Cache is an ARC engine (spec component C6). The zero value is not usable;
// construct with New.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity           int
	promotionThreshold int

	t1Cap, t2Cap int // current adaptive split, t1Cap+t2Cap <= capacity

	t1Index map[K]*dlist.Element[*mainEntry[K, V]]
	t1      *dlist.List[*mainEntry[K, V]]

	t2Index map[K]*dlist.Element[*mainEntry[K, V]]
	t2      *dlist.List[*mainEntry[K, V]]

	b1Index map[K]*dlist.Element[K]
	b1      *dlist.List[K]

	b2Index map[K]*dlist.Element[K]
	b2      *dlist.List[K]

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
// an entry is evicted from T1 or T2 (i.e. pushed onto a ghost list).
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New constructs an ARC engine bounded at capacity entries total across T1
// and T2, with ghost lists B1/B2 each bounded at capacity. promotionThreshold
// is the access count (1 on admission, plus one per touch) at which a T1
// entry migrates to T2; values less than 1 are clamped to the default of 3.
// The initial split gives T1 capacity/2 and T2 the remainder, per the spec's explicit statement
// that the adaptation algorithm does not depend on the initial split being
// balanced.
func New[K comparable, V any](capacity int, promotionThreshold int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if promotionThreshold < 1 {
		promotionThreshold = defaultPromotionThreshold
	}
	c := &Cache[K, V]{
		capacity:           capacity,
		promotionThreshold: promotionThreshold,
		t1Cap:              capacity / 2,
		t2Cap:              capacity - capacity/2,
		t1Index:            make(map[K]*dlist.Element[*mainEntry[K, V]]),
		t1:                 dlist.New[*mainEntry[K, V]](),
		t2Index:            make(map[K]*dlist.Element[*mainEntry[K, V]]),
		t2:                 dlist.New[*mainEntry[K, V]](),
		b1Index:            make(map[K]*dlist.Element[K]),
		b1:                 dlist.New[K](),
		b2Index:            make(map[K]*dlist.Element[K]),
		b2:                 dlist.New[K](),
		metrics:            cachekit.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or updates key, running the full ghost-consult / admission
// state machine described by §4.5.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity == 0 {
		return
	}
	c.consultGhostsLocked(key)

	if el, ok := c.t2Index[key]; ok {
		el.Value.val = value
		c.touchT2Locked(el)
		return
	}
	if el, ok := c.t1Index[key]; ok {
		el.Value.val = value
		c.touchT1Locked(el)
		return
	}
	c.admitT1Locked(key, value)
}

// Get reports whether key is present in T1 or T2, touching it exactly as
// Put's hit path would. A miss consults no ghost list — ghosts only guide
// admission sizing on Put, never lookup results.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.t2Index[key]; ok {
		c.touchT2Locked(el)
		c.metrics.Hit()
		return el.Value.val, true
	}
	if el, ok := c.t1Index[key]; ok {
		v := el.Value.val
		c.touchT1Locked(el)
		c.metrics.Hit()
		return v, true
	}
	c.metrics.Miss()
	var zero V
	return zero, false
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *Cache[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Contains reports whether key is resident in T1 or T2, without touching
// recency, frequency, or ghost membership.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.t1Index[key]; ok {
		return true
	}
	_, ok := c.t2Index[key]
	return ok
}

// Remove deletes key from whichever of T1/T2 holds it. It does not touch
// the ghost lists — a removed key is simply gone, not evicted.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.t1Index[key]; ok {
		c.t1.Detach(el)
		delete(c.t1Index, key)
		return true
	}
	if el, ok := c.t2Index[key]; ok {
		c.t2.Detach(el)
		delete(c.t2Index, key)
		return true
	}
	return false
}

// Clear drops every entry from T1, T2, B1, and B2, resetting the adaptive
// split back to its initial 50/50 division.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t1Index = make(map[K]*dlist.Element[*mainEntry[K, V]])
	c.t1.Clear()
	c.t2Index = make(map[K]*dlist.Element[*mainEntry[K, V]])
	c.t2.Clear()
	c.b1Index = make(map[K]*dlist.Element[K])
	c.b1.Clear()
	c.b2Index = make(map[K]*dlist.Element[K])
	c.b2.Clear()
	c.t1Cap = c.capacity / 2
	c.t2Cap = c.capacity - c.capacity/2
}

// Len reports the number of entries resident across T1 and T2. Ghost-list
// entries are not counted.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.t1Index) + len(c.t2Index)
}

// Stats is a read-only snapshot of the engine's adaptive state, taken under
// the lock.
type Stats struct {
	T1Len, T2Len, B1Len, B2Len int
	T1Cap, T2Cap               int
}

// Stats returns a snapshot of the current split and list lengths.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		T1Len: c.t1.Len(), T2Len: c.t2.Len(),
		B1Len: c.b1.Len(), B2Len: c.b2.Len(),
		T1Cap: c.t1Cap, T2Cap: c.t2Cap,
	}
}

// consultGhostsLocked implements step 1 of §4.5's admission algorithm: a
// ghost hit shifts the adaptive split toward the half that ghost guards.
// Caller must hold c.mu.
func (c *Cache[K, V]) consultGhostsLocked(key K) {
	if el, ok := c.b1Index[key]; ok {
		if c.t2Cap > 0 {
			c.t2Cap--
			c.t1Cap++
		}
		c.b1.Detach(el)
		delete(c.b1Index, key)
		return
	}
	if el, ok := c.b2Index[key]; ok {
		if c.t1Cap > 0 {
			c.t1Cap--
			c.t2Cap++
		}
		c.b2.Detach(el)
		delete(c.b2Index, key)
	}
}

// touchT1Locked bumps a T1 entry's access count and promotes it to T2 once
// the count reaches the promotion threshold; otherwise it is moved to T1's
// MRU end. Caller must hold c.mu.
func (c *Cache[K, V]) touchT1Locked(el *dlist.Element[*mainEntry[K, V]]) {
	e := el.Value
	e.count++
	if e.count < c.promotionThreshold {
		c.t1.MoveToMRU(el)
		return
	}
	c.t1.Detach(el)
	delete(c.t1Index, e.key)
	e.count = 1
	c.t2Index[e.key] = c.t2.PushMRU(e)
}

// touchT2Locked bumps a T2 entry's access count and moves it to T2's MRU
// end. Caller must hold c.mu.
func (c *Cache[K, V]) touchT2Locked(el *dlist.Element[*mainEntry[K, V]]) {
	el.Value.count++
	c.t2.MoveToMRU(el)
}

// admitT1Locked inserts a brand-new key into T1, evicting from a half if
// the total resident count is at capacity. Caller must hold c.mu.
func (c *Cache[K, V]) admitT1Locked(key K, value V) {
	if len(c.t1Index)+len(c.t2Index) >= c.capacity {
		c.evictLocked()
	}
	e := &mainEntry[K, V]{key: key, val: value, count: 1}
	c.t1Index[key] = c.t1.PushMRU(e)
}

// evictLocked picks a half to evict from — T1 if it is over its current
// share (or T2 is empty), T2 otherwise — and pushes the victim onto the
// matching ghost list. Caller must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	if len(c.t1Index) > c.t1Cap || c.t2.Len() == 0 {
		if c.evictFromT1Locked() {
			return
		}
		c.evictFromT2Locked()
		return
	}
	if c.evictFromT2Locked() {
		return
	}
	c.evictFromT1Locked()
}

// evictFromT1Locked evicts T1's LRU entry to B1. Reports whether an entry
// was evicted. Caller must hold c.mu.
func (c *Cache[K, V]) evictFromT1Locked() bool {
	e, ok := c.t1.PopLRU()
	if !ok {
		return false
	}
	delete(c.t1Index, e.key)
	c.pushGhostLocked(c.b1, c.b1Index, e.key)
	c.metrics.Evict()
	if c.onEvict != nil {
		c.onEvict(e.key, e.val)
	}
	return true
}

// evictFromT2Locked evicts T2's least-recently-used entry to B2 (§4.4's
// bucket-tie-break rule reduces to plain LRU here since T2 only tracks
// MRU order, not frequency buckets — the promotion threshold already
// captured the frequency signal on the way in). Caller must hold c.mu.
func (c *Cache[K, V]) evictFromT2Locked() bool {
	e, ok := c.t2.PopLRU()
	if !ok {
		return false
	}
	delete(c.t2Index, e.key)
	c.pushGhostLocked(c.b2, c.b2Index, e.key)
	c.metrics.Evict()
	if c.onEvict != nil {
		c.onEvict(e.key, e.val)
	}
	return true
}

// pushGhostLocked pushes key onto ghost list g (with index gi), evicting
// its oldest member first if g is already at the total capacity. Caller
// must hold c.mu.
func (c *Cache[K, V]) pushGhostLocked(g *dlist.List[K], gi map[K]*dlist.Element[K], key K) {
	if g.Len() >= c.capacity {
		if oldest, ok := g.PopLRU(); ok {
			delete(gi, oldest)
		}
	}
	gi[key] = g.PushMRU(key)
}
