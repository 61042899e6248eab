// Package metrics provides Prometheus metrics middleware and exposition.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/grcledger/grcledger/pkg/server/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the HTTP request collectors with a dedicated Prometheus
// registry so the exposition endpoint only carries this service's metrics.
type Registry struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	inFlight prometheus.Gauge
}

// NewRegistry creates a metrics registry with the HTTP request collectors and
// Go runtime collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	reg.MustRegister(duration, total, inFlight)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Registry{
		registry: reg,
		duration: duration,
		total:    total,
		inFlight: inFlight,
	}
}

// Middleware records request duration, count and in-flight gauge for every request.
func (r *Registry) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			r.inFlight.Inc()
			defer r.inFlight.Dec()

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			status := strconv.Itoa(c.Response().Status())
			method := c.Request().Method
			path := c.Request().URL.Path

			r.duration.WithLabelValues(method, path, status).Observe(duration.Seconds())
			r.total.WithLabelValues(method, path, status).Inc()

			return err
		}
	}
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// MustRegister registers additional collectors, panicking on conflict.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}
