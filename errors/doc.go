// Package errors provides unified error handling for the authentication flow.
// It implements structured error types with machine-readable codes, HTTP status
// mapping, and retryable detection following RFC 7807 and Google AIP-193.
//
// The authentication-specific codes mirror the flow's failure surface: missing
// provider configuration, unsupported inbound payloads, and the collapsed
// token-exchange and userinfo failures whose underlying cause is kept on the
// error chain for diagnostics but never becomes a distinct outward kind.
package errors
