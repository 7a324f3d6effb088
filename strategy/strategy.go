package strategy

import "context"

// Strategy is the core authentication contract. Hosts (HTTP handlers,
// middleware, CLI tools) depend on this interface rather than specific
// implementations.
//
// Authenticate processes an inbound request: a strategy either completes
// authentication, fails with an error, or declines by returning (nil, nil)
// when the request carries nothing it can act on. Action produces the
// challenge a host should present to start the flow, typically a browser
// redirect to the provider.
//
// Implementations:
//   - oidc.Strategy covers the authorization code and refresh token grants.
//   - Projects can implement custom strategies (API keys, SAML, etc.).
type Strategy interface {
	Authenticate(ctx context.Context, req *Request) (*Outcome, error)
	Action(ctx context.Context) (*Action, error)
}

// Request is the inbound authentication context a host hands to a strategy.
type Request struct {
	// Payload carries the credential material delivered to the callback
	// endpoint. Nil when the host has nothing to forward.
	Payload *Payload `json:"payload,omitempty"`

	// Values holds arbitrary host data (session hints, tenant, locale).
	// Strategies pass it through untouched; verify callbacks may read it.
	Values map[string]any `json:"-"`
}

// Payload is the credential material a provider delivers back to the host.
// A zero-value payload is treated the same as no payload at all.
type Payload struct {
	// Code is the authorization code returned on the provider redirect.
	Code string `json:"code,omitempty" form:"code"`

	// AccessToken is an access token delivered directly (implicit-style
	// flows). Recognized but not supported by the OIDC strategy.
	AccessToken string `json:"access_token,omitempty" form:"access_token"`

	// RefreshToken is a previously issued refresh token.
	RefreshToken string `json:"refresh_token,omitempty" form:"refresh_token"`
}

// IsZero reports whether the payload is nil or carries no fields.
func (p *Payload) IsZero() bool {
	return p == nil || *p == Payload{}
}

// Outcome is the terminal result of an Authenticate call.
// Either the flow is not done and Action tells the host what to do next,
// or the host's verify function produced Result.
type Outcome struct {
	// Done is false while the flow still needs a user interaction.
	Done bool `json:"done"`

	// Action is the next step for the host when Done is false.
	Action *Action `json:"action,omitempty"`

	// Result is whatever the host's verify function returned. Opaque to
	// the strategy.
	Result any `json:"result,omitempty"`
}

// ActionType identifies the kind of user interaction an Action requests.
type ActionType string

const (
	// ActionRedirect asks the host to send the user agent to Action.URL.
	ActionRedirect ActionType = "redirect"
)

// Action describes a user interaction required to advance the flow.
type Action struct {
	// Type is the interaction kind.
	Type ActionType `json:"type"`

	// URL is the target for ActionRedirect.
	URL string `json:"url,omitempty"`
}

// Redirect creates a redirect action for the given URL.
func Redirect(url string) *Action {
	return &Action{Type: ActionRedirect, URL: url}
}

// RedirectOutcome wraps a redirect action in a not-done outcome.
func RedirectOutcome(url string) *Outcome {
	return &Outcome{Done: false, Action: Redirect(url)}
}

// ResultOutcome creates a completed outcome carrying a verify result.
func ResultOutcome(result any) *Outcome {
	return &Outcome{Done: true, Result: result}
}
