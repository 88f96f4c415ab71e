package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outboundRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_client_requests_total",
			Help: "Total number of requests issued against the storefront API.",
		},
		[]string{"code", "method", "route"},
	)
	outboundRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_client_request_duration_seconds",
			Help:    "Duration of storefront API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	outboundRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_client_requests_in_flight",
			Help: "Current number of storefront API requests in flight.",
		},
	)
)

// metricsTransport records outbound request metrics at the transport level,
// so every resource call is counted no matter which method issued it.
type metricsTransport struct {
	next http.RoundTripper
}

func newMetricsTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &metricsTransport{next: next}
}

func (t *metricsTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	outboundRequestsInFlight.Inc()
	defer outboundRequestsInFlight.Dec()

	resp, err := t.next.RoundTrip(r)

	route := normalizeRoute(r.URL.Path)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	outboundRequestsTotal.WithLabelValues(code, r.Method, route).Inc()
	outboundRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

	return resp, err
}

var idSegment = regexp.MustCompile(`^[0-9a-fA-F]{24}$|^[0-9a-fA-F-]{36}$|^[0-9]+$`)

// normalizeRoute collapses resource ids in the path so the route label stays
// low-cardinality.
func normalizeRoute(path string) string {
	segments := strings.Split(path, "/")

	for i, segment := range segments {
		if idSegment.MatchString(segment) {
			segments[i] = "{id}"
		}
	}

	return strings.Join(segments, "/")
}
