package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cleanadmin"

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API requests by resource, method and status code.",
		},
		[]string{"resource", "method", "code"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API request latency by resource.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	proxyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_requests_total",
			Help:      "Proxied requests by status code.",
		},
		[]string{"code"},
	)
)

// Register registers the collectors with the default registry. Safe to call
// multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, backendDuration, proxyRequests)
	})
}

// ObserveBackend records one backend call. code 0 means the request never
// got a response.
func ObserveBackend(resource, method string, code int, dur time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	backendRequests.WithLabelValues(resource, method, label).Inc()
	backendDuration.WithLabelValues(resource).Observe(dur.Seconds())
}

func IncProxy(code int) {
	proxyRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}
