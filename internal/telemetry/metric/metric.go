package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
//
// A nil *Registry is valid: the service layer checks before recording,
// so tests that don't care about metrics can pass nil.
type Registry struct {
	prom *prometheus.Registry

	// Session lifecycle metrics.
	SessionsActive    prometheus.Gauge
	SessionsCreated   *prometheus.CounterVec // by artifact kind
	SessionsConfirmed prometheus.Counter
	SessionsExpired   prometheus.Counter
	SessionsDeleted   prometheus.Counter

	// Request metrics.
	RequestsTotal   *prometheus.CounterVec // by method, path, status
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a metrics registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		prom: reg,

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pairlink",
			Name:      "sessions_active",
			Help:      "Number of live pairing sessions in the registry.",
		}),
		SessionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pairlink",
			Name:      "sessions_created_total",
			Help:      "Total pairing sessions created, by artifact kind.",
		}, []string{"kind"}),
		SessionsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pairlink",
			Name:      "sessions_confirmed_total",
			Help:      "Total sessions confirmed before their deadline.",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pairlink",
			Name:      "sessions_expired_total",
			Help:      "Total sessions disconnected by deadline expiry.",
		}),
		SessionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pairlink",
			Name:      "sessions_deleted_total",
			Help:      "Total sessions removed by explicit delete.",
		}),

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pairlink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests, by method, route, and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pairlink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}
