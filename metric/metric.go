package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all ontology-level metrics.
type Metrics struct {
	// Store metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Individuals       prometheus.Gauge
	FactsStored       prometheus.Gauge

	// Query metrics
	QueriesTotal      *prometheus.CounterVec
	QueryDuration     prometheus.Histogram
	QueryRowsReturned prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontology",
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Total number of store operations",
			},
			[]string{"operation", "status"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ontology",
				Subsystem: "store",
				Name:      "operation_duration_seconds",
				Help:      "Store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		Individuals: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ontology",
				Subsystem: "store",
				Name:      "individuals",
				Help:      "Current number of individuals in the store",
			},
		),

		FactsStored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ontology",
				Subsystem: "store",
				Name:      "facts",
				Help:      "Current number of relation facts in the store",
			},
		),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontology",
				Subsystem: "query",
				Name:      "executions_total",
				Help:      "Total number of query executions",
			},
			[]string{"status"},
		),

		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "ontology",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Query execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		QueryRowsReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "ontology",
				Subsystem: "query",
				Name:      "rows_returned",
				Help:      "Result rows returned per query execution",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.OperationsTotal,
		m.OperationDuration,
		m.Individuals,
		m.FactsStored,
		m.QueriesTotal,
		m.QueryDuration,
		m.QueryRowsReturned,
	)

	return m
}

// RecordOperation records one store operation outcome and its duration.
func (m *Metrics) RecordOperation(op string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordQuery records one query execution outcome, duration, and row count.
func (m *Metrics) RecordQuery(duration time.Duration, rows int, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.QueriesTotal.WithLabelValues(status).Inc()
	if err == nil {
		m.QueryDuration.Observe(duration.Seconds())
		m.QueryRowsReturned.Observe(float64(rows))
	}
}

// SetGraphSize updates the individual and fact gauges after a mutation.
func (m *Metrics) SetGraphSize(individuals, facts int) {
	if m == nil {
		return
	}
	m.Individuals.Set(float64(individuals))
	m.FactsStored.Set(float64(facts))
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
