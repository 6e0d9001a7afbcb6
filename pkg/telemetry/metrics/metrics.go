// Package metrics exposes Prometheus counters for the fault pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nesteban/oops/pkg/faults"
)

// Config contains configuration for metrics collection.
type Config struct {
	// Namespace is the metric name prefix (default "oops").
	Namespace string
}

// FaultMetrics tracks the fault pipeline.
//
// Metrics:
//   - oops_faults_total: intercepted faults by classification
//   - oops_render_failures_total: error pages that could not be written
//   - oops_background_faults_total: worker goroutines that died
//   - oops_diagnostic_events_total: known failure signatures, by pattern
type FaultMetrics struct {
	registry *prometheus.Registry

	faultsTotal      *prometheus.CounterVec
	renderFailures   prometheus.Counter
	backgroundFaults prometheus.Counter
	diagnosticEvents *prometheus.CounterVec
}

// New creates and registers the fault metrics with the provided registry.
// If registry is nil a fresh one is used, keeping tests isolated from the
// default global registry.
func New(cfg Config, registry *prometheus.Registry) *FaultMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = "oops"
	}

	m := &FaultMetrics{
		registry: registry,
		faultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "faults_total",
				Help:      "Total number of faults intercepted at the request boundary",
			},
			[]string{"classification"},
		),
		renderFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "render_failures_total",
				Help:      "Total number of error pages that failed to render",
			},
		),
		backgroundFaults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "background_faults_total",
				Help:      "Total number of background workers that died from an uncaught fault",
			},
		),
		diagnosticEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "diagnostic_events_total",
				Help:      "Total number of known failure signatures detected in captured faults",
			},
			[]string{"pattern"},
		),
	}

	registry.MustRegister(
		m.faultsTotal,
		m.renderFailures,
		m.backgroundFaults,
		m.diagnosticEvents,
	)

	return m
}

// FaultIntercepted records one intercepted fault.
func (m *FaultMetrics) FaultIntercepted(class faults.Classification) {
	m.faultsTotal.WithLabelValues(class.String()).Inc()
}

// RenderFailed records one failed error page render.
func (m *FaultMetrics) RenderFailed() {
	m.renderFailures.Inc()
}

// BackgroundFault records one dead worker goroutine.
func (m *FaultMetrics) BackgroundFault() {
	m.backgroundFaults.Inc()
}

// DiagnosticEvent records one detected failure signature.
func (m *FaultMetrics) DiagnosticEvent(pattern string) {
	m.diagnosticEvents.WithLabelValues(pattern).Inc()
}

// Handler returns the HTTP handler for the Prometheus scrape endpoint.
func (m *FaultMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry returns the underlying registry, for test assertions.
func (m *FaultMetrics) Registry() *prometheus.Registry {
	return m.registry
}
