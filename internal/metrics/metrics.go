// Package metrics exposes Prometheus counters for the image pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the pipeline counters. A nil *Metrics is a valid
// no-op recorder so tests and minimal setups can skip registration.
type Metrics struct {
	registry         *prometheus.Registry
	uploadsTotal     prometheus.Counter
	conversionsTotal prometheus.Counter
	bytesSavedTotal  prometheus.Counter
	uploadFailures   prometheus.Counter
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		uploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_image_uploads_total",
			Help: "Number of images stored through the upload pipeline.",
		}),
		conversionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_image_conversions_total",
			Help: "Number of images actually converted to the target format.",
		}),
		bytesSavedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_image_bytes_saved_total",
			Help: "Cumulative bytes saved by transcoding (converted files only).",
		}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_image_upload_failures_total",
			Help: "Number of upload batches that failed after admission.",
		}),
	}

	registry.MustRegister(m.uploadsTotal, m.conversionsTotal, m.bytesSavedTotal, m.uploadFailures)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordBatch updates the counters after a successful batch upload.
func (m *Metrics) RecordBatch(stored, converted int, bytesSaved int64) {
	if m == nil {
		return
	}
	m.uploadsTotal.Add(float64(stored))
	m.conversionsTotal.Add(float64(converted))
	if bytesSaved > 0 {
		m.bytesSavedTotal.Add(float64(bytesSaved))
	}
}

// RecordFailure counts a batch that failed after admission.
func (m *Metrics) RecordFailure() {
	if m == nil {
		return
	}
	m.uploadFailures.Inc()
}
