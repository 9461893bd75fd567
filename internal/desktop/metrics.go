package desktop

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workix/desktop/pkg/client"
)

// Metrics holds the Prometheus collectors for backend proxying
type Metrics struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	responses     *prometheus.CounterVec
	responseTimes *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		callsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workix_backend_calls_total",
				Help: "Total number of call_backend_api invocations by outcome",
			},
			[]string{"method", "outcome"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workix_backend_call_duration_seconds",
				Help:    "Duration of call_backend_api invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		responses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workix_backend_responses_total",
				Help: "Total number of HTTP responses received from the backend",
			},
			[]string{"code", "method"},
		),
		responseTimes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workix_backend_response_duration_seconds",
				Help:    "Round trip time of backend HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// InstrumentTransport wraps next so every backend round trip is counted.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.responses,
		promhttp.InstrumentRoundTripperDuration(m.responseTimes, next))
}

func (m *Metrics) observeCall(method, outcome string, elapsed time.Duration) {
	m.callsTotal.WithLabelValues(methodLabel(method), outcome).Inc()
	m.callDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// methodLabel bounds the label values to the supported methods.
func methodLabel(method string) string {
	m, err := client.ParseMethod(method)
	if err != nil {
		return "invalid"
	}
	return m.String()
}
