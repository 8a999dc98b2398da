// Package cachekit and its subpackages implement an in-process, thread-safe
// key/value cache with a family of interchangeable eviction policies:
//
//   - lru:     classic recency-ordered LRU.
//   - lruk:    LRU-K, admitting a key only after K observations.
//   - lfu:     frequency-bucketed LFU with periodic aging.
//   - arc:     Adaptive Replacement Cache (recency + frequency + ghosts).
//   - sharded: fan-out wrapper partitioning any of the above across N
//     independent instances to cut lock contention.
//
// Design
//
//   - Concurrency: each engine instance owns one mutex guarding all of its
//     state. The sharded wrapper adds no lock of its own — each shard's
//     state is disjoint, so cross-shard calls need no additional
//     synchronization.
//
//   - Storage: every engine keeps a map for O(1) lookup plus one or more
//     intrusive doubly linked lists (package internal/dlist, built on
//     generic-list-go) encoding eviction order. List surgery — detach,
//     push-to-MRU, move-to-MRU — is O(1).
//
//   - No I/O, no TTL, no disk persistence, no cross-process distribution,
//     no byte-weighted eviction. Entries count as one unit each. Callers
//     needing any of that compose it around these engines.
//
// Basic usage
//
//	c := lru.New[string, []byte](1024)
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//
// Sharding any engine
//
//	c := sharded.New[string, string](8192, 16, func(cap int) cachekit.Cache[string, string] {
//	    return lru.New[string, string](cap)
//	})
//
// See each subpackage's doc comment for policy-specific semantics and
// construction parameters.
package cachekit
