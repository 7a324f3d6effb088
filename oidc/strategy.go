package oidc

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/httpclient"
	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/observability"
	"github.com/skillsenselab/authflow/strategy"
)

// Name is the conventional registry name for this strategy.
const Name = "oidc"

// Strategy authenticates users against an OIDC provider using the
// authorization code and refresh token grants.
//
// The only state shared across calls is the lazily fetched provider
// metadata; everything else is created and consumed within a single
// Authenticate or Action invocation, so one instance serves concurrent
// requests.
type Strategy struct {
	config  Config
	verify  VerifyFunc
	http    *httpclient.Client
	log     *logger.Logger
	metrics *observability.Metrics

	mu       sync.RWMutex
	metadata *ProviderMetadata
	group    singleflight.Group
}

var (
	_ strategy.Strategy           = (*Strategy)(nil)
	_ observability.HealthChecker = (*Strategy)(nil)
)

// New creates an OIDC strategy from the given configuration and a
// host-supplied verify callback.
func New(cfg Config, verify VerifyFunc) (*Strategy, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if verify == nil {
		return nil, errors.MissingField("verify")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		var err error
		hc, err = httpclient.New(httpclient.Config{
			Timeout:        cfg.HTTPTimeout,
			TLS:            cfg.TLS,
			Retry:          cfg.Retry,
			CircuitBreaker: cfg.CircuitBreaker,
			RateLimiter:    cfg.RateLimiter,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Strategy{
		config:  cfg,
		verify:  verify,
		http:    hc,
		log:     logger.Get(Name),
		metrics: cfg.Metrics,
	}, nil
}

// Authenticate processes an inbound authentication attempt.
//
// A nil or empty payload means the request carries nothing this strategy
// can act on: it declines by returning (nil, nil) without touching the
// network. A payload with a code runs the authorization code grant; one
// with a refresh token runs the refresh grant; anything else (such as a
// bare access token) fails with an unsupported-payload error before any
// provider call is made.
//
// On the grant path the strategy ensures provider metadata is loaded,
// exchanges the credential at the token endpoint, fetches userinfo, and
// hands {token, userinfo, expiresAt} to the verify callback. The verify
// result is returned unchanged.
func (s *Strategy) Authenticate(ctx context.Context, req *strategy.Request) (*strategy.Outcome, error) {
	if req == nil || req.Payload.IsZero() {
		return nil, nil
	}

	var grant GrantType
	var credential string
	switch {
	case req.Payload.Code != "":
		grant, credential = GrantAuthorizationCode, req.Payload.Code
	case req.Payload.RefreshToken != "":
		grant, credential = GrantRefreshToken, req.Payload.RefreshToken
	default:
		err := errors.UnsupportedPayload()
		s.metrics.RecordError(ctx, string(err.Code), Name)
		return nil, err
	}

	ctx, attempt, span := observability.StartAttempt(ctx, Name, string(grant),
		logger.RequestIDFromContext(ctx), s.metrics)

	outcome, err := s.run(ctx, req, grant, credential)
	switch {
	case err != nil:
		attempt.End(ctx, span, "error", err)
		s.metrics.RecordError(ctx, errorLabel(err), Name)
		return nil, err
	case outcome == nil:
		attempt.End(ctx, span, "declined", nil)
	default:
		attempt.End(ctx, span, "ok", nil)
	}
	return outcome, nil
}

// run executes the grant path: discovery, token exchange, userinfo, verify.
func (s *Strategy) run(ctx context.Context, req *strategy.Request, grant GrantType, credential string) (*strategy.Outcome, error) {
	md, err := s.ensureConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.exchange(ctx, md, grant, credential)
	if err != nil {
		return nil, err
	}

	info, err := s.fetchUserInfo(ctx, md, token)
	if err != nil {
		return nil, err
	}

	identity := &Identity{
		Token:     token,
		UserInfo:  info,
		ExpiresAt: time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}

	s.log.WithContext(ctx).Debug("identity verified against provider", logger.Fields(
		logger.FieldGrantType, string(grant),
		logger.FieldSubject, info.Subject,
	))

	return s.verify(ctx, req, identity)
}

// Action produces the authorization redirect that starts the flow.
// It fails with a configuration-missing error when the provider's
// discovery document advertises no authorization endpoint.
func (s *Strategy) Action(ctx context.Context) (*strategy.Action, error) {
	md, err := s.ensureConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	url, err := authorizationURL(md, &s.config.Client)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRedirect(ctx, Name)
	return strategy.Redirect(url), nil
}

// Metadata returns the cached provider metadata, or nil before the first
// successful discovery fetch.
func (s *Strategy) Metadata() *ProviderMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// CheckHealth reports provider reachability without generating provider
// traffic: up once the discovery document has been loaded, degraded
// before that.
func (s *Strategy) CheckHealth(_ context.Context) observability.Health {
	if s.Metadata() != nil {
		return observability.Healthy(Name)
	}
	return observability.Degraded(Name, "provider metadata not loaded")
}

// errorLabel maps an error to a metric label. Raw transport errors from
// discovery carry no app code and are counted as UNCLASSIFIED.
func errorLabel(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "UNCLASSIFIED"
}
