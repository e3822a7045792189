// Package observability holds the prometheus collectors and trace provider setup shared by the
// analysis pipeline and the HTTP server.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linreg"

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics tracks fits, fetches and HTTP requests. A nil *Metrics records nothing.
type Metrics struct {
	// fits counts fit attempts.
	// Labels: method (matrix, formula), outcome
	fits *prometheus.CounterVec

	// fitDuration measures the time spent solving a fit.
	// Labels: method
	fitDuration *prometheus.HistogramVec

	// fetches counts data source fetches.
	// Labels: source (json, mysql, influx), outcome
	fetches *prometheus.CounterVec

	// fetchDuration measures the time spent in a data source fetch.
	// Labels: source
	fetchDuration *prometheus.HistogramVec

	// requests counts served HTTP requests.
	// Labels: route, status (http status code)
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fit",
			Name:      "total",
			Help:      "Total regression fits by method and outcome",
		}, []string{"method", "outcome"}),
		fitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fit",
			Name:      "duration_seconds",
			Help:      "Regression fit latency in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"method"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "total",
			Help:      "Total data source fetches by source and outcome",
		}, []string{"source", "outcome"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Data source fetch latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"route", "status"}),
	}
}

// ObserveFit records a fit attempt
func (m *Metrics) ObserveFit(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fits.WithLabelValues(method, outcome).Inc()
	m.fitDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveFetch records a data source fetch
func (m *Metrics) ObserveFetch(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(source, outcome).Inc()
	m.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveRequest records a served HTTP request
func (m *Metrics) ObserveRequest(route, status string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, status).Inc()
}
