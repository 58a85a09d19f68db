package ui

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DashboardMetrics provides Prometheus metrics for dashboard renders.
type DashboardMetrics struct {
	registry *prometheus.Registry

	rendersTotal      *prometheus.CounterVec
	loadFailuresTotal prometheus.Counter
	renderDuration    prometheus.Histogram
	recordsLoaded     prometheus.Gauge
}

// NewDashboardMetrics creates the collectors on a private registry.
func NewDashboardMetrics() *DashboardMetrics {
	m := &DashboardMetrics{
		registry: prometheus.NewRegistry(),
		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogdash_renders_total",
				Help: "Total number of completed dashboard renders by filter",
			},
			[]string{"filter"},
		),
		loadFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cogdash_load_failures_total",
				Help: "Total number of renders halted by a load error",
			},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cogdash_render_duration_seconds",
				Help:    "Time from request to rendered page, load included",
				Buckets: prometheus.DefBuckets,
			},
		),
		recordsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cogdash_records_loaded",
				Help: "Number of records in the most recently loaded table",
			},
		),
	}

	m.registry.MustRegister(m.rendersTotal, m.loadFailuresTotal, m.renderDuration, m.recordsLoaded)
	return m
}

// ObserveRender records a completed render
func (m *DashboardMetrics) ObserveRender(filter string, records int, took time.Duration) {
	if filter == "" {
		filter = "none"
	}
	m.rendersTotal.WithLabelValues(filter).Inc()
	m.recordsLoaded.Set(float64(records))
	m.renderDuration.Observe(took.Seconds())
}

// ObserveLoadFailure records a render halted at load time
func (m *DashboardMetrics) ObserveLoadFailure(took time.Duration) {
	m.loadFailuresTotal.Inc()
	m.renderDuration.Observe(took.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *DashboardMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
