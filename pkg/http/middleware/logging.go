package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	xlogger "SigBoard/pkg/logger"
)

// RequestLogging emits one structured line per request.
func RequestLogging(log *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			log.Info("http request",
				xlogger.String("method", req.Method),
				xlogger.String("uri", req.RequestURI),
				xlogger.String("remote", req.RemoteAddr),
				xlogger.Int("status", c.Response().Status),
				xlogger.Duration("duration_ms", time.Since(start)),
			)
			return err
		}
	}
}
