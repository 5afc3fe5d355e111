package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
)

// AuthError is returned when the provider rejects the credential.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return "authentication error: " + e.Message
}

// RateLimitError is returned when the provider throttles the request.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string { return "rate limited: " + e.Message }

// APIError is any other provider-side failure that produced a response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return "API error: " + e.Message
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport error: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsRateLimitError checks if an error is a rate-limit error.
func IsRateLimitError(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

// IsAPIError checks if an error is a generic API error.
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsTransportError checks if an error is a transport failure.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// classify maps an SDK error onto the provider error taxonomy.
func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		case http.StatusTooManyRequests:
			return &RateLimitError{Message: apiErr.Error()}
		default:
			return &APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Err: fmt.Errorf("request timed out: %w", err)}
	}
	return &TransportError{Err: err}
}
