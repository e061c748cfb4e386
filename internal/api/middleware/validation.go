package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hireboard-api/pkg/utils"
)

// RequestValidation middleware tags every request with an ID and enforces a
// body size ceiling on POST requests. Document uploads get a larger limit
// than JSON payloads.
func RequestValidation(maxUploadSize int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost {
				limit := int64(1024 * 1024) // 1MB for JSON bodies
				if c.Path() == "/parse-job-file" {
					limit = maxUploadSize
				}

				if c.Request().ContentLength > limit {
					cerr := utils.NewPayloadTooLargeError("Request body too large")
					return c.JSON(cerr.Status, cerr.Response(requestID))
				}
			}

			return next(c)
		}
	}
}
