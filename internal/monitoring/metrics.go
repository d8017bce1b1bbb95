package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client's Prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Snapshot for callers without a scrape endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds running totals.
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration time.Duration
}

// NewMetrics registers the collectors with reg. A nil reg uses the default
// Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pnetwork_requests_total",
				Help: "Total number of completed client requests",
			},
			[]string{"method", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pnetwork_request_duration_seconds",
				Help:    "Client request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pnetwork_response_size_bytes",
				Help:    "Response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
	}
}

// RecordRequest records one completed request. size < 0 means no body was
// received and skips the size histogram.
func (m *Metrics) RecordRequest(method, outcome string, duration time.Duration, size int) {
	m.RequestsTotal.WithLabelValues(method, outcome).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if size >= 0 {
		m.ResponseSize.WithLabelValues(method).Observe(float64(size))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot.TotalRequests++
	if outcome != "ok" {
		m.snapshot.TotalErrors++
	}
	m.snapshot.TotalDuration += duration
}

// Snapshot returns a copy of the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
