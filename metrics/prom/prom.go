// Package prom adapts package engine's Metrics interface to Prometheus:
// hit/miss counters, a reason-labeled eviction counter, and size gauges,
// targeted at engine.EvictReason's three reasons (ttl, capacity, memory)
// and engine.Stats' byte-based sizing.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gagan2004bansal/KVMemo/engine"
)

// Adapter implements engine.Metrics and exports Prometheus counters and
// gauges. Safe for concurrent use; every Prometheus metric type already is.
type Adapter struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evicts    *prometheus.CounterVec
	sizeEnt   prometheus.Gauge
	sizeBytes prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Key lookups that found an unexpired entry",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Key lookups that found nothing, or found an expired entry",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Entries removed, by reason (ttl, capacity, memory)",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
		sizeBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_bytes",
			Help:        "Estimated resident bytes",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt, a.sizeBytes)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r engine.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates the entries and bytes gauges.
func (a *Adapter) Size(entries int, bytes uint64) {
	a.sizeEnt.Set(float64(entries))
	a.sizeBytes.Set(float64(bytes))
}

// ObserveStats pushes an engine.Stats snapshot into the size gauges; call
// it periodically (e.g. from the same loop driving sweeper.Sweeper).
func (a *Adapter) ObserveStats(s engine.Stats) {
	a.Size(s.Entries, s.MemoryBytes)
}

// Compile-time check: ensure Adapter implements engine.Metrics.
var _ engine.Metrics = (*Adapter)(nil)
