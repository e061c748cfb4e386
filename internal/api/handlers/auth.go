package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hireboard-api/internal/auth"
	"hireboard-api/internal/logging"
	"hireboard-api/pkg/models"
	"hireboard-api/pkg/utils"
)

// SignUpHandler handles POST /auth/signup by delegating account creation to
// the hosted auth service and relaying its session payload.
func SignUpHandler(client *auth.SupabaseClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)

		var req models.SignUpRequest
		if err := c.Bind(&req); err != nil {
			cerr := utils.NewBadRequestError("Invalid request format")
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		if err := validate.Struct(&req); err != nil {
			cerr := utils.NewValidationError("Valid email and password are required", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		session, err := client.SignUp(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("Signup rejected by auth service", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewSignupError(err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		return c.JSON(http.StatusOK, session)
	}
}

// SignInHandler handles POST /auth/signin via the password grant.
func SignInHandler(client *auth.SupabaseClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)

		var req models.SignInRequest
		if err := c.Bind(&req); err != nil {
			cerr := utils.NewBadRequestError("Invalid request format")
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		if err := validate.Struct(&req); err != nil {
			cerr := utils.NewValidationError("Email and password are required", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		session, err := client.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("Sign-in rejected by auth service", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewInvalidCredentialsError()
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		return c.JSON(http.StatusOK, session)
	}
}
