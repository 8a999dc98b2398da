package lruk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromotionRequiresKObservations(t *testing.T) {
	c := New[int, string](2, 10, 2)

	c.Put(1, "a")
	require.False(t, c.Contains(1), "first observation should not promote into main")
	require.Equal(t, 0, c.Len())

	c.Put(1, "a")
	require.True(t, c.Contains(1), "second observation should promote into main")
	require.Equal(t, 1, c.Len())
}

func TestGetMissStillCountsAsObservation(t *testing.T) {
	c := New[int, string](2, 10, 2)

	// Observation 1: a miss on a key that was never written records history
	// but nothing is staged yet, so it does not promote.
	_, ok := c.Get(1)
	require.False(t, ok)
	require.False(t, c.Contains(1))

	// Put stages a value and counts as observation 2 -> promotes.
	c.Put(1, "a")
	require.True(t, c.Contains(1))
}

func TestHistoryEvictionDropsStaging(t *testing.T) {
	c := New[int, string](5, 1, 3)

	c.Put(1, "a") // observation 1, staged
	c.Put(2, "b") // history capacity 1 -> evicts key 1 from history, drops staging

	c.Put(1, "a") // back to observation 1 again, since staging/history were cleared
	c.Put(1, "a") // observation 2
	require.False(t, c.Contains(1), "should need a 3rd observation after history churn reset its count")
}

func TestMainCacheEvictsAtCapacity(t *testing.T) {
	c := New[int, string](1, 10, 1) // k=1 behaves like plain LRU with a history pass-through
	c.Put(1, "a")
	c.Put(2, "b")

	require.False(t, c.Contains(1))
	require.True(t, c.Contains(2))
}

func TestRemoveAndClear(t *testing.T) {
	c := New[int, string](2, 10, 1)
	c.Put(1, "a")
	require.True(t, c.Remove(1))
	require.False(t, c.Remove(1))
	require.False(t, c.Contains(1))

	c.Put(2, "b")
	c.Clear()
	require.Equal(t, 0, c.Len())
	require.False(t, c.Contains(2))
}

func TestOnEvictFromMain(t *testing.T) {
	var evicted []int
	c := New[int, string](1, 10, 1, WithOnEvict[int, string](func(k int, _ string) {
		evicted = append(evicted, k)
	}))
	c.Put(1, "a")
	c.Put(2, "b")

	require.Equal(t, []int{1}, evicted)
}

func TestGetOrZero(t *testing.T) {
	c := New[int, string](2, 10, 1)
	require.Equal(t, "", c.GetOrZero(1))
	c.Put(1, "a")
	require.Equal(t, "a", c.GetOrZero(1))
}
