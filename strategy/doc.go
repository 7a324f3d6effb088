// Package strategy defines the authentication contract between hosts and
// authentication implementations.
//
// A Strategy has exactly two operations:
//
//   - Authenticate processes an inbound request; it completes the flow,
//     fails, or declines when the request carries nothing to act on.
//   - Action produces the challenge that starts the flow (a provider
//     redirect for browser-based strategies).
//
// Hosts wire strategies through a Registry and stay independent of any
// particular protocol:
//
//	reg := strategy.NewRegistry()
//	reg.Register("oidc", oidcStrategy)
//
//	s := reg.MustGet("oidc")
//	outcome, err := s.Authenticate(ctx, &strategy.Request{Payload: payload})
//
// A nil outcome with a nil error means the strategy declined: the request
// carried no payload, so there is nothing to exchange and nothing failed.
// Hosts decide what declining means for them (usually: start the flow via
// Action).
//
// All packages follow the same conventions: Config structs with
// ApplyDefaults()/Validate(), constructor functions, and mapstructure tags
// for config file loading.
package strategy
