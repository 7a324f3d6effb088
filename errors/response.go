package errors

import stderrors "errors"

// ErrorResponse is the JSON envelope adapters return to clients.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the client-visible part of an AppError: the cause and the
// HTTP status stay server-side.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse shapes the error for JSON serialization to a client.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}}
}

// IsAppError reports whether err has an AppError anywhere on its chain.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError extracts the AppError from err's chain, if one is there.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// Wrap converts any error into an AppError. AppErrors anywhere on the chain
// pass through unchanged; everything else becomes an internal error with the
// original as cause. Wrap(nil) returns nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// HasCode reports whether err (or anything it wraps) is an AppError carrying
// the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsConfigurationMissing reports whether err is a CONFIGURATION_MISSING error.
func IsConfigurationMissing(err error) bool { return HasCode(err, ErrCodeConfigurationMissing) }

// IsUnsupportedPayload reports whether err is an UNSUPPORTED_PAYLOAD error.
func IsUnsupportedPayload(err error) bool { return HasCode(err, ErrCodeUnsupportedPayload) }

// IsTokenExchangeFailed reports whether err is a TOKEN_EXCHANGE_FAILED error.
func IsTokenExchangeFailed(err error) bool { return HasCode(err, ErrCodeTokenExchangeFailed) }

// IsUserInfoFetchFailed reports whether err is a USERINFO_FETCH_FAILED error.
func IsUserInfoFetchFailed(err error) bool { return HasCode(err, ErrCodeUserInfoFetchFailed) }
