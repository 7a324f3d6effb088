// Package oidc implements an OpenID Connect authentication strategy
// covering the authorization code and refresh token grants.
//
// The strategy lazily discovers the provider's endpoints from the
// well-known configuration document, caches them for the process
// lifetime, and on each authentication attempt exchanges the inbound
// credential for tokens, fetches userinfo claims, and hands the result
// to a host-supplied verify callback. ID token verification is out of
// scope: trust derives from the direct token-endpoint exchange over TLS.
//
// Usage:
//
//	strat, err := oidc.New(oidc.Config{
//	    ServerURL: "https://accounts.example.com",
//	    Client: oidc.ClientConfig{
//	        ID:          "my-client-id",
//	        Secret:      "my-client-secret",
//	        RedirectURL: "https://app.example.com/auth/callback",
//	        Scopes:      []string{"openid", "profile", "email"},
//	    },
//	}, func(ctx context.Context, req *strategy.Request, identity *oidc.Identity) (*strategy.Outcome, error) {
//	    user, err := users.FindOrCreate(ctx, identity.UserInfo.Subject)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return strategy.ResultOutcome(user), nil
//	})
//
//	// Start the flow: send the user to the provider.
//	action, err := strat.Action(ctx)
//
//	// Callback: exchange the code and verify.
//	outcome, err := strat.Authenticate(ctx, &strategy.Request{
//	    Payload: &strategy.Payload{Code: code},
//	})
package oidc
