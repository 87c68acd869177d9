package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.3, 1, 3},
		},
		[]string{"method", "route"},
	)
)

// metricsMiddleware records a counter and a duration histogram per request.
// The route template (not the raw path) is used as the label so task ids do
// not explode cardinality.
func metricsMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	route := c.Route().Path
	method := c.Method()

	requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
	requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

	return err
}
