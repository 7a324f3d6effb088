package oidc

import (
	"strings"
	"time"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/httpclient"
	"github.com/skillsenselab/authflow/observability"
	"github.com/skillsenselab/authflow/resilience"
	"github.com/skillsenselab/authflow/security"
	"github.com/skillsenselab/authflow/validation"
)

// ClientConfig is the relying-party registration at the provider.
// Immutable for the lifetime of the strategy.
type ClientConfig struct {
	// ID is the OAuth2 client ID.
	ID string `yaml:"id" mapstructure:"id" validate:"required"`

	// Secret is the OAuth2 client secret (empty for public clients).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// RedirectURL is the callback URL registered with the provider.
	RedirectURL string `yaml:"redirect_url" mapstructure:"redirect_url" validate:"omitempty,url"`

	// Scopes are the OAuth2 scopes to request, in order. They are joined
	// with single spaces to form the scope string on the wire.
	// Default: ["openid", "profile", "email"].
	Scopes []string `yaml:"scopes" mapstructure:"scopes"`

	// TokenEndpointAuth selects how the client authenticates at the token
	// endpoint: TokenAuthPost (the default) carries the secret in the form
	// body, TokenAuthBasic moves the credentials into an Authorization
	// header for providers that insist on client_secret_basic.
	TokenEndpointAuth string `yaml:"token_endpoint_auth" mapstructure:"token_endpoint_auth" validate:"omitempty,oneof=post basic"`
}

// Token endpoint authentication styles.
const (
	// TokenAuthPost sends client_id and client_secret in the form body.
	TokenAuthPost = "post"
	// TokenAuthBasic sends the client credentials as HTTP basic auth.
	TokenAuthBasic = "basic"
)

// scopeString joins the configured scopes with single spaces.
func (c *ClientConfig) scopeString() string {
	return strings.Join(c.Scopes, " ")
}

// Config configures the OIDC strategy.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Client is the relying-party registration.
	Client ClientConfig `yaml:"client" mapstructure:"client"`

	// ServerURL is the provider's base URL. Discovery fetches
	// <ServerURL>/.well-known/openid-configuration.
	ServerURL string `yaml:"server_url" mapstructure:"server_url" validate:"required,url"`

	// HTTPTimeout bounds each outbound provider call (default: "10s").
	HTTPTimeout time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`

	// TLS configures transport security for providers behind custom CAs
	// or requiring mutual TLS.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures retries for provider calls. Nil disables retry;
	// the strategy itself never retries beyond this transport policy.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker protects the provider from hammering while it is down.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter bounds the outbound request rate to the provider.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`

	// HTTPClient overrides the internally constructed client.
	// Useful for tests or shared transport pools.
	HTTPClient *httpclient.Client `yaml:"-" mapstructure:"-"`

	// Metrics receives flow counters and histograms. Nil records nothing.
	Metrics *observability.Metrics `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if len(c.Client.Scopes) == 0 {
		c.Client.Scopes = []string{"openid", "profile", "email"}
	}
	if c.Client.TokenEndpointAuth == "" {
		c.Client.TokenEndpointAuth = TokenAuthPost
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 10 * time.Second
	}
}

// Validate checks required fields and URL shapes.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return errors.InvalidInput("tls", err.Error())
		}
	}
	return nil
}

// wellKnownPath is the discovery document location relative to ServerURL.
const wellKnownPath = "/.well-known/openid-configuration"
