// Package prom adapts cachekit.Metrics onto Prometheus counters and gauges.
// Grounded on IvanBrykalov-shardcache/metrics/prom/prom.go, trimmed to the
// signals cachekit.Metrics actually exposes — no cost gauge, no per-reason
// eviction labels, since this module has no TTL or byte-weighted eviction.
package prom

import (
	"github.com/cachekit/cachekit"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cachekit.Metrics and exports Prometheus counters and
// gauges. Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	evicts  prometheus.Counter
	sizeEnt prometheus.Gauge
}

var _ cachekit.Metrics = (*Adapter)(nil)

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem, e.g. "myapp", "session_cache"
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Cache evictions",
			ConstLabels: constLabels,
		}),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter.
func (a *Adapter) Evict() { a.evicts.Inc() }

// Size updates the resident-entry gauge.
func (a *Adapter) Size(entries int) { a.sizeEnt.Set(float64(entries)) }
