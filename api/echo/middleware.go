package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unitrack",
		Name:      "http_requests_total",
		Help:      "HTTP requests processed, partitioned by method, route and status code.",
	}, []string{"method", "route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unitrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latencies.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			method := ctx.Request().Method
			route := ctx.Path()
			requestsTotal.WithLabelValues(method, route, strconv.Itoa(ctx.Response().Status)).Inc()
			requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// simulatedLatencyMiddleware delays every request by a fixed amount, the way
// the mocked backend this service replaces did. Dev/demo use only.
func simulatedLatencyMiddleware(latency time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			time.Sleep(latency)
			return next(ctx)
		}
	}
}
