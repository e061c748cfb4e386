package utils

import (
	"fmt"
	"net/http"
	"time"

	"hireboard-api/pkg/models"
)

// CustomError carries the HTTP status and the wire error code alongside the
// human-readable message. Handlers render it through Response so every error
// leaves the API in the same envelope.
type CustomError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *CustomError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Response renders the error in the API's response envelope.
func (e *CustomError) Response(requestID string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     e.Code,
		Message:   e.Message,
		Details:   e.Details,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}

// NewBadRequestError covers malformed or unreadable request payloads
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: message,
	}
}

// NewValidationError covers well-formed payloads missing required fields
func NewValidationError(message, details string) *CustomError {
	return &CustomError{
		Status:  http.StatusBadRequest,
		Code:    "validation_failed",
		Message: message,
		Details: details,
	}
}

// NewAuthenticationError is returned whenever no identity could be resolved
// for the request
func NewAuthenticationError() *CustomError {
	return &CustomError{
		Status:  http.StatusUnauthorized,
		Code:    "authentication_required",
		Message: "Authentication required",
	}
}

// NewInvalidCredentialsError is returned when the auth service rejects a
// password sign-in
func NewInvalidCredentialsError() *CustomError {
	return &CustomError{
		Status:  http.StatusUnauthorized,
		Code:    "invalid_credentials",
		Message: "Invalid email or password",
	}
}

// NewSignupError relays the auth service's reason for refusing an account
func NewSignupError(message string) *CustomError {
	return &CustomError{
		Status:  http.StatusBadRequest,
		Code:    "signup_failed",
		Message: message,
	}
}

// NewPayloadTooLargeError covers bodies exceeding the configured size limit
func NewPayloadTooLargeError(message string) *CustomError {
	return &CustomError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "request_too_large",
		Message: message,
	}
}

// NewRateLimitError is returned when a caller exhausts their parse budget
func NewRateLimitError() *CustomError {
	return &CustomError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "Too many parse requests, slow down",
	}
}

// NewConversionError is returned when an uploaded document could not be
// converted to text
func NewConversionError() *CustomError {
	return &CustomError{
		Status:  http.StatusInternalServerError,
		Code:    "conversion_failed",
		Message: "Failed to extract text",
	}
}

// NewStoreError is returned when the external data store rejects an insert
// or list operation
func NewStoreError(message, details string) *CustomError {
	return &CustomError{
		Status:  http.StatusInternalServerError,
		Code:    "store_failed",
		Message: message,
		Details: details,
	}
}
