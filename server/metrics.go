package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plotline"

// metrics are registered on a per-server registry
type metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts handled requests by method, route and status
	requestsTotal *prometheus.CounterVec
	// RequestDuration measures handler latency by method and route
	requestDuration *prometheus.HistogramVec
	// InquiriesTotal counts accepted contact requests
	inquiriesTotal prometheus.Counter
	// PlotsCreatedTotal counts plots created through the admin API
	plotsCreatedTotal prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP request handling.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inquiriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiries_total",
			Help:      "Total number of contact requests accepted.",
		}),
		plotsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plots_created_total",
			Help:      "Total number of plots created.",
		}),
	}
}

// middleware records every request
func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		m.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
