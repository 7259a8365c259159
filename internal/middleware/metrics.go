package middleware

import (
	"strconv"
	"time"

	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and durations per route
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// let the error handler write the response so the status is final
			c.Error(err)
		}

		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.HTTPRequestCounter.WithLabelValues(path, method, status).Inc()
		prometheus.RequestDuration.WithLabelValues(path, method, status).Observe(duration)

		return nil
	}
}
