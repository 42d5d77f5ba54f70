package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	xlogger "SigBoard/pkg/logger"
)

// Recover converts a handler panic into a 500 response. The read surface
// must keep answering even when a single request blows up.
func Recover(log *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				log.Error("panic recovered",
					xlogger.String("path", c.Request().URL.Path),
					xlogger.String("stack", string(debug.Stack())),
					xlogger.Error(err),
				)
				_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": "Internal Server Error",
				})
			}()
			return next(c)
		}
	}
}
