// Package metrics exposes Prometheus counters for cross-section evaluations
// and scan cache traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/sawpanic/resxsec/internal/xsec"
)

// Registry holds the evaluator metrics on its own Prometheus registry so
// several instances can coexist in one process (tests, multiple servers).
type Registry struct {
	Evaluations    *prometheus.CounterVec
	GateRejections *prometheus.CounterVec
	EvalDuration   prometheus.Histogram
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter

	reg *prometheus.Registry
}

// NewRegistry creates and registers all metrics
func NewRegistry() *Registry {
	m := &Registry{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resxsec_evaluations_total",
				Help: "Completed cross-section evaluations by amplitude channel",
			},
			[]string{"channel"},
		),

		GateRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resxsec_gate_rejections_total",
				Help: "Evaluations zeroed by a validity gate",
			},
			[]string{"gate"},
		),

		EvalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resxsec_evaluation_duration_seconds",
				Help:    "Wall time of a completed evaluation",
				Buckets: []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
			},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "resxsec_cache_hits_total",
				Help: "Scan points served from the cache",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "resxsec_cache_misses_total",
				Help: "Scan points that had to be integrated",
			},
		),

		reg: prometheus.NewRegistry(),
	}

	m.reg.MustRegister(
		m.Evaluations,
		m.GateRejections,
		m.EvalDuration,
		m.CacheHits,
		m.CacheMisses,
	)
	return m
}

// Rejected implements xsec.Observer
func (m *Registry) Rejected(gate xsec.Gate) {
	m.GateRejections.WithLabelValues(string(gate)).Inc()
}

// Evaluated implements xsec.Observer
func (m *Registry) Evaluated(channel string, took time.Duration) {
	m.Evaluations.WithLabelValues(channel).Inc()
	m.EvalDuration.Observe(took.Seconds())
}

// CacheHit implements integrate.CacheObserver
func (m *Registry) CacheHit() { m.CacheHits.Inc() }

// CacheMiss implements integrate.CacheObserver
func (m *Registry) CacheMiss() { m.CacheMisses.Inc() }

// CacheCounts returns the cache hit and miss totals
func (m *Registry) CacheCounts() (hits, misses float64) {
	return counterValue(m.CacheHits), counterValue(m.CacheMisses)
}

func counterValue(c prometheus.Counter) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}

// Gatherer returns the underlying registry
func (m *Registry) Gatherer() prometheus.Gatherer { return m.reg }

// Handler serves the metrics in the Prometheus exposition format
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
