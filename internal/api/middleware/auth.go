package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"hireboard-api/internal/auth"
	"hireboard-api/internal/logging"
	"hireboard-api/pkg/utils"
)

const identityContextKey = "identity"

// RequireAuth resolves the caller's identity through the session provider
// and rejects the request with 401 before any handler work when it cannot.
// The access token is taken from the Authorization bearer header, falling
// back to the sb-access-token cookie the hosted auth service sets for
// browser clients.
func RequireAuth(provider auth.SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID, _ := c.Get("request_id").(string)
			logger := logging.GetGlobalLogger()

			token := accessToken(c)

			identity, err := provider.GetCurrentUser(c.Request().Context(), token)
			if err != nil {
				logger.Debug("Request rejected: no resolved identity", map[string]interface{}{
					"request_id": requestID,
					"path":       c.Path(),
				})

				cerr := utils.NewAuthenticationError()
				return c.JSON(cerr.Status, cerr.Response(requestID))
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved by RequireAuth, or nil when
// the middleware did not run.
func CurrentIdentity(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityContextKey).(*auth.Identity)
	return identity
}

func accessToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := c.Cookie("sb-access-token"); err == nil {
		return cookie.Value
	}

	return ""
}
