package lfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedScenario(t *testing.T) {
	c := New[int, string](2, 1_000_000)
	c.Put(1, "a")
	c.Put(2, "b")
	_, _ = c.Get(1)
	_, _ = c.Get(1)
	c.Put(3, "c") // 2 has freq 1 (min), evicted to admit 3

	_, ok := c.Get(2)
	require.False(t, ok)

	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok = c.Get(3)
	require.True(t, ok)
	require.Equal(t, "c", v)
}

func TestLawL4(t *testing.T) {
	const capacity = 4
	c := New[int, string](capacity, 1_000_000)
	for i := 1; i <= capacity; i++ {
		c.Put(i, "v")
	}
	for i := 1; i < capacity; i++ {
		_, _ = c.Get(i)
	}
	c.Put(capacity+1, "new")

	_, ok := c.Get(capacity)
	require.False(t, ok, "the only entry with min frequency must be evicted")

	for i := 1; i < capacity; i++ {
		_, ok := c.Get(i)
		require.True(t, ok)
	}
	_, ok = c.Get(capacity + 1)
	require.True(t, ok)
}

func TestTieBreakIsInsertionOrderWithinBucket(t *testing.T) {
	c := New[int, string](2, 1_000_000)
	c.Put(1, "a")
	c.Put(2, "b")
	// Both at freq 1; 1 was inserted first so it evicts first.
	c.Put(3, "c")

	_, ok := c.Get(1)
	require.False(t, ok)
	_, ok = c.Get(2)
	require.True(t, ok)
}

func TestAgingKeepsEveryEntry(t *testing.T) {
	c := New[int, string](4, 10)
	c.Put(1, "hot")
	c.Put(2, "a")
	c.Put(3, "b")
	c.Put(4, "c")

	for i := 0; i < 50; i++ {
		_, _ = c.Get(1)
	}

	stats := c.Stats()
	require.GreaterOrEqual(t, stats.MinFreq, 1)

	for k := range map[int]bool{1: true, 2: true, 3: true, 4: true} {
		_, ok := c.Get(k)
		require.True(t, ok, "aging must not have dropped any entry")
	}
}

func TestZeroCapacityIsNoop(t *testing.T) {
	c := New[int, string](0, 0)
	c.Put(1, "a")
	_, ok := c.Get(1)
	require.False(t, ok)
}

func TestRemoveAndClear(t *testing.T) {
	c := New[int, string](2, 0)
	c.Put(1, "a")
	require.True(t, c.Remove(1))
	require.False(t, c.Remove(1))

	c.Put(2, "b")
	c.Clear()
	require.Equal(t, 0, c.Len())
	_, ok := c.Get(2)
	require.False(t, ok)
}

func TestOnEvict(t *testing.T) {
	var evicted int
	c := New[int, string](1, 0, WithOnEvict[int, string](func(k int, _ string) {
		evicted = k
	}))
	c.Put(1, "a")
	c.Put(2, "b")
	require.Equal(t, 1, evicted)
}
