package owlery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request status labels
const (
	statusSuccess        = "success"
	statusInvalid        = "invalid"
	statusRateLimited    = "rate_limited"
	statusCancelled      = "cancelled"
	statusTransportError = "transport_error"
	statusHTTPError      = "http_error"
	statusDecodeError    = "decode_error"
)

// Metrics holds Prometheus metrics for Owlery queries
type Metrics struct {
	requestsTotal   *prometheus.CounterVec // By status
	requestDuration prometheus.Histogram
	instances       prometheus.Histogram // Instances per successful query
}

// NewMetrics creates and registers Owlery client metrics with the provided registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil // Metrics disabled
	}

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "containerq",
			Subsystem: "owlery",
			Name:      "requests_total",
			Help:      "Total number of instance queries sent to the reasoner",
		}, []string{"status"}),

		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "containerq",
			Subsystem: "owlery",
			Name:      "request_duration_seconds",
			Help:      "Instance query duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		instances: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "containerq",
			Subsystem: "owlery",
			Name:      "instances_returned",
			Help:      "Number of instances returned per successful query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDuration, m.instances} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// recordRequest records one query attempt.
func (m *Metrics) recordRequest(status string, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(status).Inc()
	m.requestDuration.Observe(duration.Seconds())
}

func (m *Metrics) recordInstances(n int) {
	if m == nil {
		return
	}
	m.instances.Observe(float64(n))
}
