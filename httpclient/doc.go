// Package httpclient is the transport for every outbound identity-provider
// call: discovery documents, form-encoded token exchanges, and userinfo
// lookups. One Client carries the timeout, TLS setup, default credential,
// and any resilience wrappers (retry, circuit breaker, rate limiter) so
// the calling code never touches net/http directly.
//
// Failures are typed. A non-2xx status, a connection refusal, and an
// expired deadline each produce an *Error whose code tells the caller
// whether another attempt could help:
//
//	client, err := httpclient.New(httpclient.Config{
//		Timeout: 10 * time.Second,
//		Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//		Method: http.MethodGet,
//		Path:   "https://op.example.com/.well-known/openid-configuration",
//	})
//	if httpclient.IsRetryable(err) {
//		// transient: timeout, connection loss, 429, or 5xx
//	}
package httpclient
