package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors of the API.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	conflicts prometheus.Gauge
}

// NewMetrics creates the API collectors and registers them with reg, when not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coachdesk",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coachdesk",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		conflicts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coachdesk",
			Subsystem: "schedule",
			Name:      "conflicts",
			Help:      "Schedule conflicts found by the last scan.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.conflicts)
	}
	return m
}

// ObserveConflicts records the number of conflicts of the last schedule scan.
func (m *Metrics) ObserveConflicts(n int) {
	m.conflicts.Set(float64(n))
}

func (m *Metrics) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				// the status code is only known once the error is handled
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method
			m.requests.WithLabelValues(method, route, strconv.Itoa(ctx.Response().Status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
