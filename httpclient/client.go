package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/skillsenselab/authflow/resilience"
)

// Client sends HTTP requests with authentication, TLS, and optional
// resilience applied uniformly. It is the transport for every outbound
// provider call in this module.
type Client struct {
	hc  *http.Client
	cfg Config
	cb  *resilience.CircuitBreaker
	rl  *resilience.RateLimiter
}

// New builds a Client. Each resilience wrapper activates only when its
// config section is present, so the minimal config yields a plain client
// with a timeout.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tc, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tc != nil {
			transport.TLSClientConfig = tc
		}
	}

	c := &Client{
		hc:  &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg: cfg,
	}
	if bc := cfg.CircuitBreaker; bc != nil {
		c.cb = resilience.NewCircuitBreaker(*bc)
	}
	if lc := cfg.RateLimiter; lc != nil {
		c.rl = resilience.NewRateLimiter(*lc)
	}
	return c, nil
}

// Do sends req and reads the full response. Non-2xx statuses come back as
// a typed *Error alongside the response, so callers can still inspect the
// body of a failed call.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.cfg.Retry == nil {
		return c.send(ctx, req)
	}
	return resilience.Retry(ctx, *c.cfg.Retry, func() (*Response, error) {
		return c.send(ctx, req)
	})
}

// send runs one attempt through the rate limiter and circuit breaker.
func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	if c.rl != nil {
		if waitErr := c.rl.Wait(ctx); waitErr != nil {
			return nil, waitErr
		}
	}
	if c.cb == nil {
		return c.roundTrip(ctx, req)
	}

	var resp *Response
	execErr := c.cb.Execute(func() error {
		var rtErr error
		resp, rtErr = c.roundTrip(ctx, req)
		return rtErr
	})
	return resp, execErr
}

// roundTrip performs the HTTP exchange and classifies the outcome.
func (c *Client) roundTrip(ctx context.Context, req Request) (*Response, error) {
	hreq, err := c.assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := c.hc.Do(hreq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = raw.Body.Close() }()

	body, err := io.ReadAll(raw.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{
		StatusCode: raw.StatusCode,
		Headers:    singleValued(raw.Header),
		Body:       body,
	}
	if typed := ClassifyStatusCode(raw.StatusCode, body); typed != nil {
		return resp, typed
	}
	return resp, nil
}

// assemble turns a Request into an *http.Request with the client defaults
// folded in.
func (c *Client) assemble(ctx context.Context, req Request) (*http.Request, error) {
	body, contentType, err := req.encodedBody()
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encoding request body: %v", err))
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.resolve(req.Path), body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("building request: %v", err))
	}

	if len(req.Query) > 0 {
		qs := hreq.URL.Query()
		for k, v := range req.Query {
			qs.Set(k, v)
		}
		hreq.URL.RawQuery = qs.Encode()
	}

	// Per-request headers win over the client defaults.
	for k, v := range c.cfg.Headers {
		hreq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", contentType)
	}

	cred := c.cfg.Auth
	if req.Auth != nil {
		cred = req.Auth
	}
	cred.apply(hreq)

	return hreq, nil
}

// resolve joins path onto BaseURL unless path is already absolute.
func (c *Client) resolve(path string) string {
	if c.cfg.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// singleValued keeps the first value of each header, which is all the
// flow ever needs from a provider response.
func singleValued(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return m
}
