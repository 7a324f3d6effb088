package errors

import (
	"fmt"
	"net/http"
)

// AppError is the one error type the module surfaces. Every failure an
// operation can return carries a stable code, a message safe to show a
// client, and optionally the underlying cause for logs.
type AppError struct {
	// Code identifies the failure for machines.
	Code ErrorCode `json:"code"`
	// Message explains the failure to a human, without internals.
	Message string `json:"message"`
	// Retryable hints whether repeating the operation could succeed.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status an HTTP adapter should respond with.
	HTTPStatus int `json:"-"`
	// Details carries structured context, serialized to clients.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the wrapped lower-level error. Never serialized.
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += " (cause: " + e.Cause.Error() + ")"
	}
	return s
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail records one context key and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	e.details()[key] = value
	return e
}

// WithDetails merges context keys and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	m := e.details()
	for k, v := range details {
		m[k] = v
	}
	return e
}

func (e *AppError) details() map[string]any {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	return e.Details
}

// New builds an AppError, deriving Retryable from the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Flow Error Constructors ---

// ConfigurationMissing reports a provider endpoint that is unknown, either
// because discovery has not succeeded yet or because the provider's
// discovery document omits it.
func ConfigurationMissing(endpoint string) *AppError {
	return New(ErrCodeConfigurationMissing,
		fmt.Sprintf("The provider configuration is missing the %s endpoint.", endpoint),
		http.StatusInternalServerError).
		WithDetail("endpoint", endpoint)
}

// UnsupportedPayload reports an authentication payload that matches none of
// the supported grant shapes.
func UnsupportedPayload() *AppError {
	return New(ErrCodeUnsupportedPayload,
		"The authentication payload matches no supported grant type.",
		http.StatusBadRequest)
}

// TokenExchangeFailed collapses any token endpoint failure into one opaque
// kind, keeping the transport or decode error as the cause for logs.
func TokenExchangeFailed(cause error) *AppError {
	return New(ErrCodeTokenExchangeFailed,
		"The token endpoint request failed. Please try again.",
		http.StatusBadGateway).
		WithCause(cause)
}

// UserInfoFetchFailed collapses any userinfo endpoint failure into one
// opaque kind, keeping the transport or decode error as the cause for logs.
func UserInfoFetchFailed(cause error) *AppError {
	return New(ErrCodeUserInfoFetchFailed,
		"The userinfo endpoint request failed. Please try again.",
		http.StatusBadGateway).
		WithCause(cause)
}

// --- Shared Constructors ---

// InvalidInput reports a bad input value, naming the field when known.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason, http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports a failed validation pass with a prebuilt message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// MissingField reports an absent required field.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField,
		"Missing required field: "+field,
		http.StatusBadRequest).
		WithDetail("field", field)
}

// InvalidFormat reports a field whose value has the wrong shape.
func InvalidFormat(field, expectedFormat string) *AppError {
	return New(ErrCodeInvalidFormat,
		fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		http.StatusBadRequest).
		WithDetails(map[string]any{"field": field, "expected_format": expectedFormat})
}

// Unauthorized reports a request that failed authentication.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// Internal reports an unexpected failure, keeping the cause for logs.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal,
		"An unexpected error occurred. Please try again or contact support.",
		http.StatusInternalServerError).
		WithCause(cause)
}
