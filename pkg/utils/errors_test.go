package utils

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructorsWireCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *CustomError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("Invalid request format"), http.StatusBadRequest, "invalid_request"},
		{"validation", NewValidationError("Title and description are required", "missing"), http.StatusBadRequest, "validation_failed"},
		{"authentication", NewAuthenticationError(), http.StatusUnauthorized, "authentication_required"},
		{"credentials", NewInvalidCredentialsError(), http.StatusUnauthorized, "invalid_credentials"},
		{"signup", NewSignupError("email taken"), http.StatusBadRequest, "signup_failed"},
		{"payload", NewPayloadTooLargeError("too big"), http.StatusRequestEntityTooLarge, "request_too_large"},
		{"rate limit", NewRateLimitError(), http.StatusTooManyRequests, "rate_limited"},
		{"conversion", NewConversionError(), http.StatusInternalServerError, "conversion_failed"},
		{"store", NewStoreError("Database insert failed", "timeout"), http.StatusInternalServerError, "store_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestCustomErrorResponse(t *testing.T) {
	cerr := NewStoreError("Database insert failed", "connection refused")
	resp := cerr.Response("req-123")

	assert.Equal(t, "store_failed", resp.Error)
	assert.Equal(t, "Database insert failed", resp.Message)
	assert.Equal(t, "connection refused", resp.Details)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestCustomErrorError(t *testing.T) {
	assert.Equal(t, "Database insert failed: timeout", NewStoreError("Database insert failed", "timeout").Error())
	assert.Equal(t, "Authentication required", NewAuthenticationError().Error())
}
