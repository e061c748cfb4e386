package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORSConfig builds CORS middleware for the dashboard frontend. When origins
// are pinned in config, credentialed requests are allowed so the browser can
// send the sb-access-token cookie; the wildcard fallback cannot carry
// credentials per the fetch spec.
func CORSConfig(allowedOrigins []string) echo.MiddlewareFunc {
	origins := allowedOrigins[:0:0]
	for _, o := range allowedOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}
	allowedOrigins = origins

	allowCredentials := true
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
		allowCredentials = false
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	})
}
