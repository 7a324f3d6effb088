// Package resilience provides retry, circuit breaking and rate limiting
// for calls to identity providers and other remote dependencies.
//
// The pieces are independent and compose the way the HTTP transport wires
// them: the limiter paces the call, the breaker decides whether to place
// it at all, and Retry re-runs the whole thing on retryable failures.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("idp"))
//	rl := resilience.NewRateLimiter(resilience.DefaultRateLimiterConfig("idp"))
//
//	_, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*TokenSet, error) {
//	    if err := rl.Wait(ctx); err != nil {
//	        return nil, err
//	    }
//	    var t *TokenSet
//	    err := cb.Execute(func() error {
//	        var callErr error
//	        t, callErr = exchangeCode(ctx)
//	        return callErr
//	    })
//	    return t, err
//	})
//
// Everything here is in-process state; nothing is shared across replicas.
package resilience
