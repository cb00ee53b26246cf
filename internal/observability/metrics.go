package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	calculations     *prometheus.CounterVec
	finalPremiums    prometheus.Histogram
	validationErrors *prometheus.CounterVec
}

// NewMetrics creates collectors registered on a private registry, so tests
// and multiple servers in one process never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "premium",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium",
				Subsystem: "calculator",
				Name:      "calculations_total",
				Help:      "Premium calculations by risk level and age bracket",
			},
			[]string{"risk_level", "age_bracket"},
		),
		finalPremiums: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "premium",
				Subsystem: "calculator",
				Name:      "final_premium",
				Help:      "Distribution of calculated final premiums",
				Buckets:   prometheus.ExponentialBuckets(250, 2, 8),
			},
		),
		validationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "premium",
				Subsystem: "calculator",
				Name:      "validation_errors_total",
				Help:      "Rejected premium requests by offending field",
			},
			[]string{"field"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.calculations,
		m.finalPremiums,
		m.validationErrors,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveCalculation records a successful premium calculation.
func (m *Metrics) ObserveCalculation(riskLevel, ageBracket string, finalPremium float64) {
	m.calculations.WithLabelValues(riskLevel, ageBracket).Inc()
	m.finalPremiums.Observe(finalPremium)
}

// ObserveValidationError records a rejected field.
func (m *Metrics) ObserveValidationError(field string) {
	m.validationErrors.WithLabelValues(field).Inc()
}
