package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// capture builds a JSON logger writing into the returned buffer so tests
// can assert on the entries themselves.
func capture(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{ServiceName: "authtest", Level: level, Format: "json", Output: "stdout"}
	return newLogger(cfg, cfg.ServiceName, &buf), &buf
}

// lastEntry decodes the final JSON line written into buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		t.Fatal("no log output")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.ServiceName != "authflow" {
		t.Errorf("ServiceName = %q, want authflow", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("Output = %q, want stdout", cfg.Output)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{ServiceName: "relay", Level: "debug", Format: "json", Output: "stderr"}
	cfg.ApplyDefaults()

	if cfg.ServiceName != "relay" || cfg.Level != "debug" || cfg.Format != "json" || cfg.Output != "stderr" {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "debug", Format: "json"}, false},
		{"valid console", Config{Level: "warn", Format: "console"}, false},
		{"unknown level", Config{Level: "verbose", Format: "json"}, true},
		{"unknown format", Config{Level: "info", Format: "text"}, true},
		{"empty level", Config{Format: "json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntryShape(t *testing.T) {
	l, buf := capture(t, "info")
	l.Info("token exchanged", Fields(FieldGrantType, "authorization_code"))

	entry := lastEntry(t, buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "token exchanged" {
		t.Errorf("message = %v, want %q", entry["message"], "token exchanged")
	}
	if entry[FieldService] != "authtest" {
		t.Errorf("service = %v, want authtest", entry[FieldService])
	}
	if entry[FieldGrantType] != "authorization_code" {
		t.Errorf("grant_type = %v, want authorization_code", entry[FieldGrantType])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestLevelSuppressesBelow(t *testing.T) {
	l, buf := capture(t, "warn")

	l.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info written despite warn level: %s", buf.String())
	}

	l.Warn("loud")
	if entry := lastEntry(t, buf); entry["message"] != "loud" {
		t.Errorf("message = %v, want loud", entry["message"])
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l, buf := capture(t, "shouty")

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written despite info fallback: %s", buf.String())
	}

	l.Info("visible")
	if entry := lastEntry(t, buf); entry["message"] != "visible" {
		t.Errorf("message = %v, want visible", entry["message"])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", Output: "stdout", NoColor: true}
	l := newLogger(cfg, "authtest", &buf)

	l.Info("human readable")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output looks like JSON: %s", out)
	}
	if !strings.Contains(out, "human readable") {
		t.Errorf("console output missing message: %s", out)
	}
}

func TestCallerField(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "json", Caller: true}
	l := newLogger(cfg, "authtest", &buf)

	l.Info("locate me")

	entry := lastEntry(t, &buf)
	caller, ok := entry["caller"].(string)
	if !ok || !strings.Contains(caller, "logger_test.go") {
		t.Errorf("caller = %v, want a logger_test.go location", entry["caller"])
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := capture(t, "info")
	l.WithComponent("oidc").Info("tagged")

	if entry := lastEntry(t, buf); entry[FieldComponent] != "oidc" {
		t.Errorf("component = %v, want oidc", entry[FieldComponent])
	}
}

func TestWithFields(t *testing.T) {
	l, buf := capture(t, "info")
	l.WithFields(map[string]any{FieldEndpoint: "https://op.example.com/token"}).Info("bound")

	if entry := lastEntry(t, buf); entry[FieldEndpoint] != "https://op.example.com/token" {
		t.Errorf("endpoint = %v, want bound value", entry[FieldEndpoint])
	}
}

func TestWithError(t *testing.T) {
	l, buf := capture(t, "info")
	l.WithError(errors.New("connection refused")).Warn("fetch failed")

	if entry := lastEntry(t, buf); entry[FieldError] != "connection refused" {
		t.Errorf("error = %v, want connection refused", entry[FieldError])
	}
}

func TestWithContextStampsIDs(t *testing.T) {
	l, buf := capture(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithTrace(ctx, "trace-abc", "span-def")
	l.WithContext(ctx).Info("correlated")

	entry := lastEntry(t, buf)
	if entry[FieldRequestID] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry[FieldRequestID])
	}
	if entry[FieldTraceID] != "trace-abc" {
		t.Errorf("trace_id = %v, want trace-abc", entry[FieldTraceID])
	}
	if entry[FieldSpanID] != "span-def" {
		t.Errorf("span_id = %v, want span-def", entry[FieldSpanID])
	}
}

func TestWithContextEmpty(t *testing.T) {
	l, buf := capture(t, "info")
	l.WithContext(context.Background()).Info("bare")

	entry := lastEntry(t, buf)
	for _, key := range []string{FieldRequestID, FieldTraceID, FieldSpanID} {
		if _, ok := entry[key]; ok {
			t.Errorf("unexpected %s on entry from empty context", key)
		}
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-7")
	if got := RequestIDFromContext(ctx); got != "req-7" {
		t.Errorf("RequestIDFromContext = %q, want req-7", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext on empty context = %q, want empty", got)
	}
}

func TestFieldsBuilder(t *testing.T) {
	tests := []struct {
		name string
		kvs  []any
		want map[string]any
	}{
		{"pairs", []any{"a", 1, "b", "two"}, map[string]any{"a": 1, "b": "two"}},
		{"odd trailing value dropped", []any{"a", 1, "dangling"}, map[string]any{"a": 1}},
		{"non-string key dropped", []any{42, "x", "b", 2}, map[string]any{"b": 2}},
		{"empty", nil, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fields(tt.kvs...)
			if len(got) != len(tt.want) {
				t.Fatalf("Fields() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Fields()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func swapGlobal(t *testing.T, l *Logger) {
	t.Helper()
	globalMu.Lock()
	prev := global
	global = l
	globalMu.Unlock()
	t.Cleanup(func() { SetGlobal(prev) })
}

func TestGlobalLazyDefault(t *testing.T) {
	swapGlobal(t, nil)

	l := Global()
	if l == nil {
		t.Fatal("Global() returned nil")
	}
	if l.service != "authflow" {
		t.Errorf("default global service = %q, want authflow", l.service)
	}
}

func TestInitInstallsConfiguredService(t *testing.T) {
	swapGlobal(t, nil)

	Init(&Config{ServiceName: "relay", Level: "debug", Format: "json"})
	if got := Global().service; got != "relay" {
		t.Errorf("global service after Init = %q, want relay", got)
	}
}

func TestPackageFuncsUseGlobal(t *testing.T) {
	l, buf := capture(t, "info")
	swapGlobal(t, l)

	Info("through the global", Fields("via", "package func"))

	entry := lastEntry(t, buf)
	if entry["message"] != "through the global" {
		t.Errorf("message = %v, want through the global", entry["message"])
	}
	if entry["via"] != "package func" {
		t.Errorf("via = %v, want package func", entry["via"])
	}
}

func TestRegisterAndGet(t *testing.T) {
	l, _ := capture(t, "debug")
	Register("exchange-test", l)
	t.Cleanup(func() {
		namedMu.Lock()
		delete(named, "exchange-test")
		namedMu.Unlock()
	})

	if got := Get("exchange-test"); got != l {
		t.Errorf("Get returned %p, want registered logger %p", got, l)
	}
}

func TestGetFallsBackToComponentLogger(t *testing.T) {
	l, buf := capture(t, "info")
	swapGlobal(t, l)

	Get("mystery").Info("fell back")

	if entry := lastEntry(t, buf); entry[FieldComponent] != "mystery" {
		t.Errorf("component = %v, want mystery", entry[FieldComponent])
	}
}
