package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusAdapter struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewPrometheusAdapter(reg prometheus.Registerer) *PrometheusAdapter {
	factory := promauto.With(reg)
	return &PrometheusAdapter{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motoshop",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "motoshop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordMetrics is deferred by handlers; the status code is final by then.
func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())

	p.requests.WithLabelValues(c.Request.Method, route, status).Inc()
	p.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}
