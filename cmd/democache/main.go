// Command democache exercises each eviction engine once, the way
// IvanBrykalov-shardcache/cmd/bench/main.go exercises shardcache — but as a
// minimal runnable example rather than a load-generating benchmark harness;
// driving workloads and reporting hit rates is an external collaborator
// this module does not specify.
package main

import (
	"fmt"
	"log"

	"github.com/cachekit/cachekit"
	"github.com/cachekit/cachekit/arc"
	"github.com/cachekit/cachekit/lfu"
	"github.com/cachekit/cachekit/lru"
	"github.com/cachekit/cachekit/lruk"
	"github.com/cachekit/cachekit/sharded"
)

func main() {
	demoLRU()
	demoLRUK()
	demoLFU()
	demoARC()
	demoSharded()
}

func demoLRU() {
	c := lru.New[string, string](3)
	c.Put("1", "a")
	c.Put("2", "b")
	c.Put("3", "c")
	c.Get("2")
	c.Put("4", "d")
	report("lru", c)
}

func demoLRUK() {
	c := lruk.New[string, string](3, 3, 2)
	c.Put("1", "a")
	c.Put("2", "b")
	c.Put("1", "a")
	c.Put("3", "c")
	report("lruk", c)
}

func demoLFU() {
	c := lfu.New[string, string](2, 0)
	c.Put("1", "a")
	c.Put("2", "b")
	c.Get("1")
	c.Get("1")
	c.Put("3", "c")
	report("lfu", c)
}

func demoARC() {
	c := arc.New[string, string](4, 3)
	for i := 1; i <= 4; i++ {
		c.Put(fmt.Sprint(i), "v")
	}
	c.Get("1")
	c.Get("1")
	c.Get("1")
	report("arc", c)
}

func demoSharded() {
	c := sharded.New[string, string](8, 2, func(cap int) cachekit.Cache[string, string] {
		return lru.New[string, string](cap)
	})
	for i := 0; i < 20; i++ {
		c.Put(fmt.Sprintf("k%d", i), "v")
	}
	log.Printf("sharded: len=%d shards=%d", c.Len(), c.ShardCount())
}

func report(name string, c cachekit.Cache[string, string]) {
	log.Printf("%s: len=%d", name, c.Len())
}
