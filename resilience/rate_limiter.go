package resilience

import (
	"context"
	"sync"
	"time"
)

const (
	defaultRate  = 10.0
	defaultBurst = 20
)

// RateLimiterConfig configures a token bucket limiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in the OnLimit callback.
	Name string
	// Rate is the sustained request rate per second.
	Rate float64
	// Burst is the bucket capacity; defaults to Rate when unset.
	Burst int
	// OnLimit is called whenever a request finds the bucket empty.
	OnLimit func(name string)
}

// DefaultRateLimiterConfig allows a sustained 10 req/s with bursts of 20,
// a conservative ceiling for provider endpoints that meter token requests.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{Name: name, Rate: defaultRate, Burst: defaultBurst}
}

// RateLimiter is a token bucket: each request takes a token, tokens refill
// continuously at the configured rate.
type RateLimiter struct {
	cfg RateLimiterConfig

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = defaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.Rate)
	}
	return &RateLimiter{cfg: cfg, tokens: float64(cfg.Burst), last: time.Now()}
}

// Allow takes a token if one is available, without blocking.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens >= 1 {
		l.tokens--
		return true
	}

	if l.cfg.OnLimit != nil {
		l.cfg.OnLimit(l.cfg.Name)
	}
	return false
}

// Wait blocks until a token is available or ctx ends. The token is
// reserved up front, so concurrent waiters queue instead of racing for
// the same refill.
func (l *RateLimiter) Wait(ctx context.Context) error {
	delay := l.reserve()
	if delay <= 0 {
		return nil
	}
	return sleep(ctx, delay)
}

// Tokens reports the tokens currently available. Negative values mean
// waiters have reserved ahead of the refill.
func (l *RateLimiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.tokens
}

// reserve takes one token immediately, going negative if none is
// available, and returns how long the caller must wait for its turn.
func (l *RateLimiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	l.tokens--
	if l.tokens >= 0 {
		return 0
	}

	if l.cfg.OnLimit != nil {
		l.cfg.OnLimit(l.cfg.Name)
	}
	return time.Duration(-l.tokens / l.cfg.Rate * float64(time.Second))
}

// refill credits tokens for the time elapsed since the last update,
// capped at the burst size. Callers must hold l.mu.
func (l *RateLimiter) refill() {
	now := time.Now()
	l.tokens += now.Sub(l.last).Seconds() * l.cfg.Rate
	l.last = now

	if l.tokens > float64(l.cfg.Burst) {
		l.tokens = float64(l.cfg.Burst)
	}
}
