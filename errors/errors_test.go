package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNewDerivesRetryable(t *testing.T) {
	if err := New(ErrCodeUnsupportedPayload, "bad payload", http.StatusBadRequest); err.Retryable {
		t.Error("UNSUPPORTED_PAYLOAD must not be retryable")
	}
	if err := New(ErrCodeTokenExchangeFailed, "exchange failed", http.StatusBadGateway); !err.Retryable {
		t.Error("TOKEN_EXCHANGE_FAILED must be retryable")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ConfigurationMissing", ConfigurationMissing("token_endpoint"), ErrCodeConfigurationMissing, http.StatusInternalServerError, false},
		{"UnsupportedPayload", UnsupportedPayload(), ErrCodeUnsupportedPayload, http.StatusBadRequest, false},
		{"TokenExchangeFailed", TokenExchangeFailed(nil), ErrCodeTokenExchangeFailed, http.StatusBadGateway, true},
		{"UserInfoFetchFailed", UserInfoFetchFailed(nil), ErrCodeUserInfoFetchFailed, http.StatusBadGateway, true},
		{"InvalidInput", InvalidInput("server_url", "must be an absolute URL"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"Validation", Validation("two fields failed"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"MissingField", MissingField("verify"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"InvalidFormat", InvalidFormat("server_url", "absolute URL"), ErrCodeInvalidFormat, http.StatusBadRequest, false},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestConstructorDetails(t *testing.T) {
	if d := ConfigurationMissing("token_endpoint").Details["endpoint"]; d != "token_endpoint" {
		t.Errorf("endpoint detail = %v", d)
	}
	if d := InvalidInput("server_url", "bad").Details["field"]; d != "server_url" {
		t.Errorf("field detail = %v", d)
	}
	if d := MissingField("verify").Details["field"]; d != "verify" {
		t.Errorf("field detail = %v", d)
	}
	if d := InvalidFormat("url", "absolute URL").Details["expected_format"]; d != "absolute URL" {
		t.Errorf("expected_format detail = %v", d)
	}
}

func TestErrorString(t *testing.T) {
	plain := ConfigurationMissing("authorization_endpoint").Error()
	if !strings.Contains(plain, "CONFIGURATION_MISSING") || !strings.Contains(plain, "authorization_endpoint") {
		t.Errorf("Error() = %q", plain)
	}

	withCause := TokenExchangeFailed(fmt.Errorf("connection refused")).Error()
	if !strings.Contains(withCause, "connection refused") {
		t.Errorf("Error() should render the cause, got %q", withCause)
	}
}

func TestCauseRetention(t *testing.T) {
	cause := fmt.Errorf("decode failed")

	if err := UserInfoFetchFailed(cause); err.Unwrap() != cause {
		t.Error("constructor cause lost")
	}
	if err := Internal(cause); err.Cause != cause {
		t.Error("Internal cause lost")
	}
	if err := UnsupportedPayload().WithCause(cause); err.Cause != cause {
		t.Error("WithCause cause lost")
	}
	if !stderrors.Is(TokenExchangeFailed(cause), cause) {
		t.Error("errors.Is should see through to the cause")
	}
}

func TestUnauthorizedMessage(t *testing.T) {
	if msg := Unauthorized("").Message; msg != "Authentication required." {
		t.Errorf("default message = %q", msg)
	}
	if msg := Unauthorized("unknown subject").Message; msg != "unknown subject" {
		t.Errorf("custom message = %q", msg)
	}
}

func TestDetailBuilders(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("WithDetail on zero value: %v", err.Details)
	}

	err = ConfigurationMissing("userinfo_endpoint").
		WithDetails(map[string]any{"issuer": "https://idp.example.com"}).
		WithDetails(map[string]any{"another": "detail"})

	for key, want := range map[string]any{
		"endpoint": "userinfo_endpoint",
		"issuer":   "https://idp.example.com",
		"another":  "detail",
	} {
		if err.Details[key] != want {
			t.Errorf("Details[%q] = %v, want %v", key, err.Details[key], want)
		}
	}
}

func TestIsRetryableCode(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeTokenExchangeFailed, ErrCodeUserInfoFetchFailed} {
		if !IsRetryableCode(code) {
			t.Errorf("%s should be retryable", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeConfigurationMissing, ErrCodeUnsupportedPayload, ErrCodeInvalidInput, ErrCodeUnauthorized, ErrCodeInternal} {
		if IsRetryableCode(code) {
			t.Errorf("%s should not be retryable", code)
		}
	}
}

func TestToResponse(t *testing.T) {
	err := ConfigurationMissing("token_endpoint").WithCause(fmt.Errorf("secret infra detail"))
	resp := err.ToResponse()

	if resp.Error.Code != ErrCodeConfigurationMissing || resp.Error.Retryable {
		t.Errorf("response body: %+v", resp.Error)
	}
	if resp.Error.Details["endpoint"] != "token_endpoint" {
		t.Errorf("details: %v", resp.Error.Details)
	}

	raw, jerr := json.Marshal(resp)
	if jerr != nil {
		t.Fatalf("marshal: %v", jerr)
	}
	body := string(raw)
	if !strings.Contains(body, `"code":"CONFIGURATION_MISSING"`) {
		t.Errorf("serialized response: %s", body)
	}
	if strings.Contains(body, "secret infra detail") {
		t.Error("cause leaked into the client response")
	}
}

func TestIsAppError(t *testing.T) {
	appErr := UnsupportedPayload()

	if !IsAppError(appErr) {
		t.Error("direct AppError not detected")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", appErr)) {
		t.Error("wrapped AppError not detected")
	}
	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("plain error misdetected")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))

	got, ok := AsAppError(wrapped)
	if !ok || got.Code != ErrCodeInternal {
		t.Fatalf("AsAppError = %v, %v", got, ok)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("AsAppError matched a plain error")
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if Wrap(nil) != nil {
			t.Error("Wrap(nil) should be nil")
		}
	})

	t.Run("app error passes through", func(t *testing.T) {
		orig := ConfigurationMissing("token_endpoint")
		if got := Wrap(orig); got != orig {
			t.Errorf("Wrap returned %v, want the original pointer", got)
		}
	})

	t.Run("wrapped app error unwraps", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", UnsupportedPayload())
		if got := Wrap(wrapped); got.Code != ErrCodeUnsupportedPayload {
			t.Errorf("Code = %s", got.Code)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		plain := fmt.Errorf("something broke")
		got := Wrap(plain)
		if got.Code != ErrCodeInternal || got.Cause != plain {
			t.Errorf("Wrap(plain) = %+v", got)
		}
	})
}

func TestCodePredicates(t *testing.T) {
	exchange := TokenExchangeFailed(fmt.Errorf("502"))
	userinfo := UserInfoFetchFailed(fmt.Errorf("timeout"))

	if !IsTokenExchangeFailed(exchange) || IsTokenExchangeFailed(userinfo) {
		t.Error("IsTokenExchangeFailed misclassifies")
	}
	if !IsUserInfoFetchFailed(fmt.Errorf("outer: %w", userinfo)) {
		t.Error("IsUserInfoFetchFailed should see through wrapping")
	}
	if !IsConfigurationMissing(ConfigurationMissing("authorization_endpoint")) {
		t.Error("IsConfigurationMissing misses its own constructor")
	}
	if !IsUnsupportedPayload(UnsupportedPayload()) {
		t.Error("IsUnsupportedPayload misses its own constructor")
	}
	if IsConfigurationMissing(fmt.Errorf("plain")) || HasCode(nil, ErrCodeInternal) {
		t.Error("plain or nil errors should not classify")
	}
}
