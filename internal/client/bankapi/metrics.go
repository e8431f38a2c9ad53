package bankapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts banking API calls by endpoint template and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bankportal",
			Subsystem: "bankapi",
			Name:      "requests_total",
			Help:      "Banking API requests by endpoint and status code.",
		}, []string{"method", "endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bankportal",
			Subsystem: "bankapi",
			Name:      "request_duration_seconds",
			Help:      "Banking API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// observe records one call. code 0 means the request never got a response.
func (m *Metrics) observe(method, endpoint string, code int, started time.Time) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(method, endpoint, label).Inc()
	m.duration.WithLabelValues(method, endpoint).Observe(time.Since(started).Seconds())
}
