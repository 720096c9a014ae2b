package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus collectors for sip-planner. A nil *Registry
// is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	Simulations        *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	CacheLookups       *prometheus.CounterVec
	CacheErrors        *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	RateLimited        prometheus.Counter
}

// NewRegistry creates a registry with the process and Go collectors attached.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sip_simulations_total",
				Help: "Total number of simulations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		SimulationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sip_simulation_duration_seconds",
				Help:    "Duration of simulation requests in seconds",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"kind"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sip_cache_lookups_total",
				Help: "Result cache lookups by result (hit|miss)",
			},
			[]string{"result"},
		),

		CacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sip_cache_errors_total",
				Help: "Result cache failures by operation",
			},
			[]string{"op"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sip_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sip_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),

		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sip_http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Simulations,
		r.SimulationDuration,
		r.CacheLookups,
		r.CacheErrors,
		r.HTTPRequests,
		r.HTTPDuration,
		r.RateLimited,
	)
	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Registry) ObserveSimulation(kind string, err error, d time.Duration) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.Simulations.WithLabelValues(kind, outcome).Inc()
	r.SimulationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (r *Registry) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.CacheLookups.WithLabelValues("miss").Inc()
}

func (r *Registry) CacheError(op string) {
	if r == nil {
		return
	}
	r.CacheErrors.WithLabelValues(op).Inc()
}

func (r *Registry) ObserveHTTP(route, method string, code int, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	r.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (r *Registry) RateLimitRejected() {
	if r == nil {
		return
	}
	r.RateLimited.Inc()
}
