package errors

// ErrorCode identifies a failure class across process boundaries. Codes are
// part of the client contract and never change meaning.
type ErrorCode string

// Codes the authentication flow produces.
const (
	// ErrCodeConfigurationMissing: a required provider endpoint is unknown.
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	// ErrCodeUnsupportedPayload: the payload matches no supported grant shape.
	ErrCodeUnsupportedPayload ErrorCode = "UNSUPPORTED_PAYLOAD"
	// ErrCodeTokenExchangeFailed: the token endpoint call failed, any reason.
	ErrCodeTokenExchangeFailed ErrorCode = "TOKEN_EXCHANGE_FAILED"
	// ErrCodeUserInfoFetchFailed: the userinfo endpoint call failed, any reason.
	ErrCodeUserInfoFetchFailed ErrorCode = "USERINFO_FETCH_FAILED"
)

// Codes shared by validation and the HTTP adapters.
const (
	// ErrCodeInvalidInput: a value failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField: a required field is absent.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat: a field value has the wrong shape.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeUnauthorized: the request failed authentication.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal: an unexpected failure with no better classification.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Provider calls may be transient failures worth repeating; everything else
// needs a changed request or configuration first.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTokenExchangeFailed: true,
	ErrCodeUserInfoFetchFailed: true,
}

// IsRetryableCode reports whether operations failing with code may be retried.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
