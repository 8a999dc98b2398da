package lru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedScenario(t *testing.T) {
	c := New[int, string](3)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	v, ok := c.Get(2)
	require.True(t, ok)
	require.Equal(t, "b", v)

	c.Put(4, "d")

	_, ok = c.Get(1)
	require.False(t, ok, "1 should have been evicted as LRU")

	v, ok = c.Get(2)
	require.True(t, ok)
	require.Equal(t, "b", v)

	v, ok = c.Get(3)
	require.True(t, ok)
	require.Equal(t, "c", v)

	v, ok = c.Get(4)
	require.True(t, ok)
	require.Equal(t, "d", v)
}

func TestZeroCapacityIsNoop(t *testing.T) {
	c := New[string, int](0)
	c.Put("a", 1)
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestPutOnHitOverwritesAndPromotes(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(1, "a2")
	c.Put(3, "c")

	_, ok := c.Get(2)
	require.False(t, ok, "2 should have been evicted, 1 was promoted by the overwrite")

	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "a2", v)
}

func TestRemove(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "a")

	require.True(t, c.Remove(1))
	require.False(t, c.Remove(1))

	_, ok := c.Get(1)
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Clear()

	require.Equal(t, 0, c.Len())
	_, ok := c.Get(1)
	require.False(t, ok)

	c.Put(3, "c")
	v, ok := c.Get(3)
	require.True(t, ok)
	require.Equal(t, "c", v)
}

func TestGetOrZero(t *testing.T) {
	c := New[int, string](2)
	require.Equal(t, "", c.GetOrZero(1))
	c.Put(1, "a")
	require.Equal(t, "a", c.GetOrZero(1))
}

func TestContainsDoesNotPromote(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "a")
	c.Put(2, "b")

	require.True(t, c.Contains(1))
	c.Put(3, "c")

	_, ok := c.Get(1)
	require.False(t, ok, "Contains must not have promoted 1; 1 was still the LRU entry")

	v, ok := c.Get(3)
	require.True(t, ok)
	require.Equal(t, "c", v)
}

func TestOnEvictCallback(t *testing.T) {
	var evictedKey int
	var evictedVal string
	c := New[int, string](1, WithOnEvict[int, string](func(k int, v string) {
		evictedKey, evictedVal = k, v
	}))
	c.Put(1, "a")
	c.Put(2, "b")

	require.Equal(t, 1, evictedKey)
	require.Equal(t, "a", evictedVal)
}

type countingMetrics struct {
	hits, misses, evicts int
}

func (m *countingMetrics) Hit()     { m.hits++ }
func (m *countingMetrics) Miss()    { m.misses++ }
func (m *countingMetrics) Evict()   { m.evicts++ }
func (m *countingMetrics) Size(int) {}

func TestMetricsHooked(t *testing.T) {
	m := &countingMetrics{}
	c := New[int, string](1, WithMetrics[int, string](m))
	c.Put(1, "a")
	_, _ = c.Get(1)
	_, _ = c.Get(2)
	c.Put(2, "b")

	require.Equal(t, 1, m.hits)
	require.Equal(t, 1, m.misses)
	require.Equal(t, 1, m.evicts)
}
