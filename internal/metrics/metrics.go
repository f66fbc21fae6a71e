// Package metrics owns the process-wide counters and histograms for one
// service instance. It is the only mutable state shared between concurrent
// requests; all mutation goes through prometheus primitives, which are atomic.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of an external call attempt.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Registry struct {
	service string
	reg     *prometheus.Registry

	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	errorsTotal          *prometheus.CounterVec
	externalCallsTotal   *prometheus.CounterVec
	externalCallDuration *prometheus.HistogramVec
}

// NewRegistry creates an isolated registry for one service. The service name
// is bound once and stamped on every sample.
func NewRegistry(service string) *Registry {
	r := &Registry{
		service: service,
		reg:     prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"service", "method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "endpoint"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errors_total",
				Help: "Total number of application errors by type",
			},
			[]string{"service", "endpoint", "error_type"},
		),
		externalCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_service_calls_total",
				Help: "Total number of outbound calls to dependency services",
			},
			[]string{"caller", "target", "outcome"},
		),
		externalCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_service_call_duration_seconds",
				Help:    "Outbound dependency call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"caller", "target"},
		),
	}

	r.reg.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.errorsTotal,
		r.externalCallsTotal,
		r.externalCallDuration,
	)

	return r
}

func (r *Registry) Service() string {
	return r.service
}

func (r *Registry) IncRequest(method, endpoint string, status int) {
	r.requestsTotal.WithLabelValues(r.service, method, endpoint, strconv.Itoa(status)).Inc()
}

func (r *Registry) ObserveRequest(method, endpoint string, seconds float64) {
	r.requestDuration.WithLabelValues(r.service, method, endpoint).Observe(seconds)
}

func (r *Registry) IncError(endpoint, errorType string) {
	r.errorsTotal.WithLabelValues(r.service, endpoint, errorType).Inc()
}

func (r *Registry) IncExternalCall(target, outcome string) {
	r.externalCallsTotal.WithLabelValues(r.service, target, outcome).Inc()
}

func (r *Registry) ObserveExternalCall(target string, seconds float64) {
	r.externalCallDuration.WithLabelValues(r.service, target).Observe(seconds)
}

// WarmEndpoint pre-creates the request series for a route so every metric
// family renders with zero values before the first request arrives. A scraper
// can rely on the names from process start.
func (r *Registry) WarmEndpoint(method, endpoint string) {
	r.requestsTotal.WithLabelValues(r.service, method, endpoint, "200")
	r.requestDuration.WithLabelValues(r.service, method, endpoint)
}

func (r *Registry) WarmError(endpoint, errorType string) {
	r.errorsTotal.WithLabelValues(r.service, endpoint, errorType)
}

func (r *Registry) WarmTarget(target string) {
	r.externalCallsTotal.WithLabelValues(r.service, target, OutcomeSuccess)
	r.externalCallsTotal.WithLabelValues(r.service, target, OutcomeError)
	r.externalCallDuration.WithLabelValues(r.service, target)
}

// Handler serves the text exposition of everything recorded so far.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
