package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 100 * time.Millisecond
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0
	defaultJitter         = 0.1
)

// RetryConfig shapes how an operation is retried. The zero value is not
// usable directly; Retry normalizes missing fields to the defaults.
type RetryConfig struct {
	// MaxAttempts counts the first try as attempt one.
	MaxAttempts int
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// MaxBackoff caps the grown delay.
	MaxBackoff time.Duration
	// BackoffFactor multiplies the delay after every failed attempt.
	BackoffFactor float64
	// Jitter randomizes each delay by ±(Jitter * delay), 0.0 to 1.0.
	Jitter float64
	// RetryIf decides whether an error is worth another attempt.
	// Defaults to DefaultRetryIf.
	RetryIf func(error) bool
	// OnRetry is invoked before each retry sleep.
	OnRetry func(attempt int, err error, backoff time.Duration)
}

// DefaultRetryConfig returns the defaults used when a host enables retry
// on the transport: three attempts, 100ms initial backoff doubling up to
// ten seconds, with 10% jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    defaultMaxAttempts,
		InitialBackoff: defaultInitialBackoff,
		MaxBackoff:     defaultMaxBackoff,
		BackoffFactor:  defaultBackoffFactor,
		Jitter:         defaultJitter,
		RetryIf:        DefaultRetryIf,
	}
}

// DefaultRetryIf retries every error except context cancellation; callers
// that can tell a rejected request from a failed one should install their
// own predicate.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// normalized fills unset fields so a partially specified config (say, only
// MaxAttempts from YAML) still behaves.
func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = defaultBackoffFactor
	}
	if c.RetryIf == nil {
		c.RetryIf = DefaultRetryIf
	}
	return c
}

// backoff computes the sleep before the retry following the given attempt.
func (c RetryConfig) backoff(attempt int) time.Duration {
	d := float64(c.InitialBackoff) * math.Pow(c.BackoffFactor, float64(attempt-1))
	if c.Jitter > 0 {
		// Shift by a random amount in [-jitter, +jitter] of the delay.
		d += (rand.Float64()*2 - 1) * c.Jitter * d
	}
	if d > float64(c.MaxBackoff) {
		d = float64(c.MaxBackoff)
	}
	if d < 0 {
		d = float64(c.InitialBackoff)
	}
	return time.Duration(d)
}

// Retry runs op until it succeeds, the error is ruled out by RetryIf, the
// attempts are exhausted, or ctx ends. On failure the last error comes
// back; the context error wins when ctx ends first.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func() (T, error)) (T, error) {
	var zero T
	c := cfg.normalized()

	var last error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op()
		if err == nil {
			return v, nil
		}
		last = err

		if !c.RetryIf(err) {
			return zero, err
		}
		if attempt == c.MaxAttempts {
			break
		}

		delay := c.backoff(attempt)
		if c.OnRetry != nil {
			c.OnRetry(attempt, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, last
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
