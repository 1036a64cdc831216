package client

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricRequestsTotal          = "posadmin_api_requests_total"
	MetricRequestDurationSeconds = "posadmin_api_request_duration_seconds"
)

// Metrics counts and times gateway exchanges by method, resource and status.
// A transport failure is recorded with status "error".
type Metrics struct {
	requestsTotal          *prometheus.CounterVec
	requestDurationSeconds *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors with reg. A nil reg gets a
// private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRequestsTotal,
				Help: "Total number of API requests issued by the client",
			},
			[]string{"method", "resource", "status"},
		),
		requestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRequestDurationSeconds,
				Help:    "API request duration in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "resource"},
		),
	}

	reg.MustRegister(m.requestsTotal, m.requestDurationSeconds)
	return m
}

func (m *Metrics) observe(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	res := resource(path)
	m.requestsTotal.WithLabelValues(method, res, code).Inc()
	m.requestDurationSeconds.WithLabelValues(method, res).Observe(elapsed.Seconds())
}

// resource keeps label cardinality bounded: "category/12" becomes "category".
func resource(path string) string {
	path = strings.TrimPrefix(path, "/")
	if head, _, ok := strings.Cut(path, "/"); ok && head != "user" {
		return head
	}
	return path
}
