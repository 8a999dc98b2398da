package cachekit

// Metrics exposes the observability hooks an engine calls into on every
// access. A NoopMetrics is used when none is configured; see metrics/prom
// for a Prometheus-backed implementation.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
}

// NoopMetrics discards every signal. It is the default for every engine.
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Evict()   {}
func (NoopMetrics) Size(int) {}

var _ Metrics = NoopMetrics{}
