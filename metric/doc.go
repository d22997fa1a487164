// Package metric provides Prometheus-based metrics for the ontology store
// and query engine.
//
// The package owns a private Prometheus registry so test processes and
// embedded stores never collide on the default registry. Store operations,
// query executions, and graph size gauges are recorded through a single
// Metrics value; components accept a nil *Metrics to disable recording.
//
// # Usage
//
//	m := metric.NewMetrics()
//	store := ontology.NewStore(ns, m, nil)
//	http.Handle("/metrics", m.Handler())
package metric
