package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeStatus  = "http_error"
	outcomeNetwork = "network_error"
	outcomeDecode  = "decode_error"
	outcomeInvalid = "invalid_request"
)

// Metrics records backend call counts and latencies. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	if outcome != outcomeInvalid {
		m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	}
}
