package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode buckets transport failures by what the caller can do about them.
type ErrorCode int

const (
	ErrCodeTimeout    ErrorCode = iota // deadline expired
	ErrCodeConnection                  // could not reach the host
	ErrCodeAuth                        // 401 or 403
	ErrCodeNotFound                    // 404
	ErrCodeRateLimit                   // 429
	ErrCodeValidation                  // malformed request or other 4xx
	ErrCodeServer                      // 5xx
)

var errorCodeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return "unknown"
}

// Error is the typed failure for every request this package sends. The
// response body rides along uninterpreted; callers that care about OAuth
// error fields decode Body themselves.
type Error struct {
	// StatusCode is zero for failures before a response arrived.
	StatusCode int
	Code       ErrorCode
	Message    string
	// Retryable marks failures worth another attempt: timeouts,
	// connection errors, 429 and 5xx.
	Retryable bool
	Body      []byte
	Err       error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError wraps a deadline failure.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError wraps a failure to reach the host at all.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError reports a request the client refused to send.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode turns a non-2xx response into a typed error, keeping
// the body for diagnostics. Returns nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	code := ErrCodeServer
	retryable := false
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code, retryable = ErrCodeRateLimit, true
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeValidation
	case statusCode >= 500:
		retryable = true
	}

	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    msg,
		Retryable:  retryable,
		Body:       body,
	}
}

func is(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout reports whether err is a typed timeout error.
func IsTimeout(err error) bool { return is(err, ErrCodeTimeout) }

// IsConnection reports whether err is a typed connection error.
func IsConnection(err error) bool { return is(err, ErrCodeConnection) }

// IsAuth reports whether err is a 401/403 response error.
func IsAuth(err error) bool { return is(err, ErrCodeAuth) }

// IsNotFound reports whether err is a 404 response error.
func IsNotFound(err error) bool { return is(err, ErrCodeNotFound) }

// IsRateLimit reports whether err is a 429 response error.
func IsRateLimit(err error) bool { return is(err, ErrCodeRateLimit) }

// IsServerError reports whether err is a 5xx response error.
func IsServerError(err error) bool { return is(err, ErrCodeServer) }

// IsRetryable reports whether the transport considers the failure
// transient.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Retryable
}
