package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the console gateway.
type Metrics struct {
	AggregationPasses  *prometheus.CounterVec
	UpstreamRequests   *prometheus.CounterVec
	UpstreamLatency    *prometheus.HistogramVec
	Mutations          *prometheus.CounterVec
	ActiveViewSessions prometheus.Gauge
	EndpointLatency    *prometheus.HistogramVec
	CircuitOpened      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AggregationPasses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bibliodesk_aggregation_passes_total",
			Help: "Aggregation passes by primary collection and outcome",
		}, []string{"collection", "outcome"}),
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bibliodesk_upstream_requests_total",
			Help: "Upstream service requests by service, operation, and outcome",
		}, []string{"service", "op", "outcome"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bibliodesk_upstream_latency_seconds",
			Help:    "Latency of upstream service calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "op"}),
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bibliodesk_mutations_total",
			Help: "Lifecycle mutations by operation and outcome",
		}, []string{"op", "outcome"}),
		ActiveViewSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bibliodesk_active_view_sessions",
			Help: "Current number of live operator view sessions",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bibliodesk_endpoint_latency_seconds",
			Help:    "Latency of console endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		CircuitOpened: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bibliodesk_circuit_opened_total",
			Help: "Circuit breaker open transitions by upstream service",
		}, []string{"service"}),
	}
}

// ObserveUpstream records one upstream call's latency and outcome.
func (m *Metrics) ObserveUpstream(service, op string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(service, op, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(service, op).Observe(d.Seconds())
}

// ObserveRequest satisfies the request middleware's LatencyObserver.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	m.EndpointLatency.WithLabelValues(method, path, statusLabel(status)).Observe(d.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
