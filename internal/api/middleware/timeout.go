package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig bounds request handling time. Document parsing gets its own
// longer budget, so the parse route is exempt from the general deadline.
func TimeoutConfig(timeout, parseTimeout time.Duration) echo.MiddlewareFunc {
	general := middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/parse-job-file")
		},
	})
	parse := middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: parseTimeout,
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Path(), "/parse-job-file")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return general(parse(next))
	}
}
