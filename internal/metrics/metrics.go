// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chefbazaar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RoleDecisions counts admin decisions on role requests.
	RoleDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chefbazaar",
			Subsystem: "role_requests",
			Name:      "decisions_total",
			Help:      "Role request decisions by request type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	OrderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chefbazaar",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Applied order status transitions.",
		},
		[]string{"to"},
	)

	// Reconciliations counts payment confirmations by result:
	// created, replayed, unpaid.
	Reconciliations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chefbazaar",
			Subsystem: "payments",
			Name:      "reconciliations_total",
			Help:      "Payment session reconciliations by result.",
		},
		[]string{"result"},
	)
)

var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RoleDecisions,
		OrderTransitions,
		Reconciliations,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request duration keyed by the echo route pattern.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			RequestDuration.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
