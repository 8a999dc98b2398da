// Package hashutil holds the small sharding helpers the sharded wrapper
// needs: a default shard count derived from hardware parallelism and a
// power-of-two check used to pick between a fast mask and a plain modulo
// when routing a key to its shard. Adapted from
// IvanBrykalov-shardcache/internal/util — the hash itself now comes from
// xxhash (see sharded.go) rather than the hand-rolled Fnv64a this package
// used to carry.
package hashutil

import "runtime"

// IsPowerOfTwo reports whether x is a power of two (x > 0).
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && (x&(x-1)) == 0
}

// NextPow2 returns the smallest power of two >= x, with x == 0 mapping to 1.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// DefaultShardCount picks a practical shard count when the caller asks for
// "hardware parallelism" (shard_count == 0): nextPow2(2*GOMAXPROCS), clamped
// to [1, 256].
func DefaultShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	return n
}

// Index maps a 64-bit hash to a shard index in [0, shards). Uses a mask when
// shards is a power of two, plain modulo otherwise.
func Index(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
