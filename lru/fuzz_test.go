package lru

import (
	"strings"
	"testing"
)

// Fuzz basic Put/Get/Remove semantics under arbitrary string inputs.
// Guards against panics and checks law L1 (put then get returns what was
// put, absent an intervening eviction).
func FuzzPutGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](16)

		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		if !c.Remove(k) {
			t.Fatalf("Remove must return true for a present key")
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}
	})
}
