// Package metrics provides Prometheus metrics collection for the
// reference dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the dashboard.
type Collector struct {
	// Catalog size
	Boilers  prometheus.Gauge
	Surfaces prometheus.Gauge

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Mutations
	MutationsTotal *prometheus.CounterVec
	ImportsTotal   prometheus.Counter
	ImportRecords  prometheus.Counter
	ImportFailures prometheus.Counter
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a collector registered on reg. Tests pass a fresh
// registry to avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Boilers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "boilerref",
			Name:      "catalog_boilers",
			Help:      "Number of boilers in the catalog",
		}),
		Surfaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "boilerref",
			Name:      "catalog_surfaces",
			Help:      "Number of heating surfaces in the catalog",
		}),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "boilerref",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "boilerref",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path", "status"},
		),

		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "boilerref",
				Name:      "catalog_mutations_total",
				Help:      "Total catalog mutations by action",
			},
			[]string{"action"},
		),
		ImportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "boilerref",
			Name:      "imports_total",
			Help:      "Total number of completed catalog imports",
		}),
		ImportRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "boilerref",
			Name:      "import_records_total",
			Help:      "Total records added by catalog imports",
		}),
		ImportFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "boilerref",
			Name:      "import_failures_total",
			Help:      "Total rejected catalog imports (malformed uploads)",
		}),
	}
}

// SetCatalogSize updates the catalog gauges after a load or mutation.
func (c *Collector) SetCatalogSize(boilers, surfaces int) {
	c.Boilers.Set(float64(boilers))
	c.Surfaces.Set(float64(surfaces))
}
