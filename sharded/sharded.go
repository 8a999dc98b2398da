// Package sharded wraps N independent engines behind the cachekit.Cache
// contract, routing each key to shard = hash(key) mod N to cut lock
// contention under concurrent access. Grounded on
// IvanBrykalov-shardcache/cache/shard.go's fan-out structure, generalized
// here to wrap any engine (not just its built-in LRU) via a factory
// function, per original_source/include/myLfu.h's myHashLfuCache showing
// the same fan-out applied to a non-LRU policy.
package sharded

import (
	"encoding/binary"
	"fmt"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/internal/hashutil"
	"github.com/cespare/xxhash/v2"
)

// Factory builds one shard's underlying engine with the given per-shard
// capacity.
type Factory[K comparable, V any] func(shardCapacity int) cachekit.Cache[K, V]

// Cache fans out across N independently locked shards. It owns no lock of
// its own — each shard synchronizes itself, and shards never touch each
// other's state.
type Cache[K comparable, V any] struct {
	shards []cachekit.Cache[K, V]
}

var _ cachekit.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs a sharded wrapper over capacity entries, split across
// shardCount independent engines built by factory. Each shard is sized
// ⌈capacity / shardCount⌉, so total admitted entries may exceed capacity by
// up to shardCount-1. shardCount of 0 selects hardware parallelism.
func New[K comparable, V any](capacity, shardCount int, factory Factory[K, V]) *Cache[K, V] {
	if shardCount <= 0 {
		shardCount = hashutil.DefaultShardCount()
	}
	perShard := 0
	if shardCount > 0 {
		perShard = (capacity + shardCount - 1) / shardCount
	}
	shards := make([]cachekit.Cache[K, V], shardCount)
	for i := range shards {
		shards[i] = factory(perShard)
	}
	return &Cache[K, V]{shards: shards}
}

// Put routes to the shard owning key.
func (c *Cache[K, V]) Put(key K, value V) {
	c.shardFor(key).Put(key, value)
}

// Get routes to the shard owning key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.shardFor(key).Get(key)
}

// GetOrZero routes to the shard owning key.
func (c *Cache[K, V]) GetOrZero(key K) V {
	return c.shardFor(key).GetOrZero(key)
}

// Remove routes to the shard owning key.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.shardFor(key).Remove(key)
}

// Clear iterates every shard and clears it. There is no cross-shard
// atomicity: a concurrent writer on another shard observes Clear as
// happening at an arbitrary point relative to its own operation.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.Clear()
	}
}

// Len sums the resident entry count across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// ShardCount reports the number of underlying shards.
func (c *Cache[K, V]) ShardCount() int {
	return len(c.shards)
}

// shardFor hashes key and picks the owning shard.
func (c *Cache[K, V]) shardFor(key K) cachekit.Cache[K, V] {
	return c.shards[hashutil.Index(hashKey(key), len(c.shards))]
}

// hashKey produces a 64-bit digest of key via xxhash. Strings and
// fixed-width integers are hashed directly; since K is constrained only to
// comparable, any other key is first rendered through fmt.Sprint — acceptable
// here since routing only needs a stable, well-distributed digest, not a
// canonical encoding.
func hashKey[K comparable](key K) uint64 {
	if s, ok := any(key).(string); ok {
		return xxhash.Sum64String(s)
	}
	if b, ok := any(key).([]byte); ok {
		return xxhash.Sum64(b)
	}
	if n, ok := toUint64(key); ok {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		return xxhash.Sum64(buf[:])
	}
	return xxhash.Sum64String(fmt.Sprint(key))
}

// toUint64 fast-paths the common fixed-width integer key types so routing
// avoids fmt.Sprint's allocation in the hot path.
func toUint64[K comparable](key K) (uint64, bool) {
	switch v := any(key).(type) {
	case int:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	default:
		return 0, false
	}
}
