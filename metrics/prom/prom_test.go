package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestAdapterRecordsSignals(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "cachekit", "demo", nil)
	require.NotNil(t, a)

	a.Hit()
	a.Hit()
	a.Miss()
	a.Evict()
	a.Size(7)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	require.True(t, names["cachekit_demo_hits_total"])
	require.True(t, names["cachekit_demo_misses_total"])
	require.True(t, names["cachekit_demo_evictions_total"])
	require.True(t, names["cachekit_demo_size_entries"])
}

func TestConstLabelsDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry(), "cachekit", "demo2", prometheus.Labels{"env": "test"})
	})
}
