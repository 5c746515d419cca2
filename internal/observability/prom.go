package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "userhub"

var (
	httpBuckets  = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	storeBuckets = []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 3}
)

// Prom holds the service collectors: HTTP traffic per route template and
// document store round trips per logical op.
type Prom struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
	HTTPRequestBytes *prometheus.HistogramVec

	StoreOpDuration *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by method, route template and status.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   httpBuckets,
		}, []string{"method", "route", "status"}),

		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Requests currently being served.",
		}),

		HTTPRequestBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_body_bytes",
			Help:      "Declared request body size for requests that carry one.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}, []string{"method", "route"}),

		StoreOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "op_duration_seconds",
			Help:      "Document store latency per logical op and outcome.",
			Buckets:   storeBuckets,
		}, []string{"op", "status"}),

		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Document store failures by logical op and error class.",
		}, []string{"op", "class"}),
	}

	reg.MustRegister(
		p.HTTPRequests,
		p.HTTPDuration,
		p.HTTPInFlight,
		p.HTTPRequestBytes,
		p.StoreOpDuration,
		p.StoreErrors,
	)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		p.HTTPInFlight.Inc()
		defer p.HTTPInFlight.Dec()

		ctx.Next()

		// FullPath is empty for requests no route matched
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		status := strconv.Itoa(ctx.Writer.Status())

		p.HTTPRequests.WithLabelValues(method, route, status).Inc()
		p.HTTPDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())

		if n := ctx.Request.ContentLength; n > 0 {
			p.HTTPRequestBytes.WithLabelValues(method, route).Observe(float64(n))
		}
	}
}
