package httpclient

import (
	"fmt"
	"time"

	"github.com/skillsenselab/authflow/resilience"
)

const defaultTimeout = 30 * time.Second

// Config builds a Client.
type Config struct {
	// BaseURL, when set, is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each attempt end to end. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is the default credential; individual requests may override it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS tunes the transport; nil keeps Go's defaults.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry, CircuitBreaker, and RateLimiter each activate their wrapper
	// when non-nil.
	Retry          *resilience.RetryConfig          `yaml:"-" mapstructure:"-"`
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
	RateLimiter    *resilience.RateLimiterConfig    `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate rejects configurations New cannot honor.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: non-positive timeout %v", c.Timeout)
	}
	if c.TLS != nil {
		return c.TLS.Validate()
	}
	return nil
}

// DefaultRetryConfig is the retry setup tuned for this client: the
// resilience defaults with RetryIf bound to the transport's own notion
// of a transient failure.
func DefaultRetryConfig() *resilience.RetryConfig {
	rc := resilience.DefaultRetryConfig()
	rc.RetryIf = IsRetryable
	return &rc
}
