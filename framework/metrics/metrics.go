// Package metrics exports container activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-servicemanager/framework/container"
)

// Collector holds the container metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	Resolutions   *prometheus.CounterVec
	Misses        *prometheus.CounterVec
	Registrations *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so several
// containers (or tests) never collide on registration.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_resolutions_total",
				Help:      "Total number of successful service resolutions",
			},
			[]string{"service"},
		),
		Misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_lookup_misses_total",
				Help:      "Total number of lookups for unbound services",
			},
			[]string{"service"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_registrations_total",
				Help:      "Total number of provider registrations, including shared-instance caching",
			},
			[]string{"service"},
		),
	}

	registry.MustRegister(c.Resolutions, c.Misses, c.Registrations)
	return c
}

// Attach feeds the collector from app's hooks and exports the number of
// bound services as a gauge. Attach a collector to one container only.
func (c *Collector) Attach(app *container.Container, namespace string) {
	app.AfterResolving(func(name string, _ any) {
		c.Resolutions.WithLabelValues(name).Inc()
	})
	app.OnMissing(func(name string) {
		c.Misses.WithLabelValues(name).Inc()
	})
	app.OnRegister(func(name string) {
		c.Registrations.WithLabelValues(name).Inc()
	})

	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "services_bound",
			Help:      "Number of services currently bound in the container",
		},
		func() float64 { return float64(len(app.Names())) },
	))
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
