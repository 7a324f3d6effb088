package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errProviderDown = errors.New("provider unavailable")

func TestRetrySucceedsOnFirstAttempt(t *testing.T) {
	calls := 0

	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "tokens", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "tokens" {
		t.Errorf("expected 'tokens', got %q", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	calls := 0

	result, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errProviderDown
		}
		return "tokens", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "tokens" {
		t.Errorf("expected 'tokens', got %q", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReturnsLastErrorWhenExhausted(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
	}
	calls := 0

	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", errProviderDown
	})

	if !errors.Is(err, errProviderDown) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryStopsWhenRetryIfDeclines(t *testing.T) {
	permanent := errors.New("invalid_grant")
	cfg := RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: time.Millisecond,
		RetryIf:        func(err error) bool { return !errors.Is(err, permanent) },
	}
	calls := 0

	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", permanent
	})

	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: time.Minute,
	}
	calls := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Retry(ctx, cfg, func() (string, error) {
		calls++
		return "", errProviderDown
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestRetryContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Retry(ctx, DefaultRetryConfig(), func() (string, error) {
		calls++
		return "", errProviderDown
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls, got %d", calls)
	}
}

func TestRetryOnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			attempts = append(attempts, attempt)
		},
	}

	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", errProviderDown
	})

	// No callback after the final attempt.
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("expected callbacks for attempts [1 2], got %v", attempts)
	}
}

func TestRetryNormalizesZeroConfig(t *testing.T) {
	calls := 0

	_, err := Retry(context.Background(), RetryConfig{InitialBackoff: time.Millisecond}, func() (string, error) {
		calls++
		return "", errProviderDown
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Errorf("expected default of 3 attempts, got %d", calls)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(errProviderDown) != true {
		t.Error("expected plain errors to be retryable")
	}
	if DefaultRetryIf(context.Canceled) {
		t.Error("expected context.Canceled to stop retrying")
	}
	if DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("expected context.DeadlineExceeded to stop retrying")
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		BackoffFactor:  2.0,
	}.normalized()

	if d := cfg.backoff(1); d != 100*time.Millisecond {
		t.Errorf("attempt 1: expected 100ms, got %v", d)
	}
	if d := cfg.backoff(2); d != 200*time.Millisecond {
		t.Errorf("attempt 2: expected 200ms, got %v", d)
	}
	if d := cfg.backoff(3); d != 300*time.Millisecond {
		t.Errorf("attempt 3: expected cap at 300ms, got %v", d)
	}
}

func TestBackoffJitterStaysInRange(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.5,
	}.normalized()

	for i := 0; i < 100; i++ {
		d := cfg.backoff(1)
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("jittered backoff %v outside [50ms, 150ms]", d)
		}
	}
}
