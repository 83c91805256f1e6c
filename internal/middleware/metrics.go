package middleware

import (
	"errors"
	"strconv"
	"time"

	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Metrics records the count and duration of every request against its route template
func Metrics(m *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			m.ObserveRequest(c.Request().Method, c.Path(), strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
