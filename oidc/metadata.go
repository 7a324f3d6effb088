package oidc

// ProviderMetadata is the parsed OpenID Connect discovery document.
// Every field is optional: an absent endpoint is a valid, representable
// state and only becomes an error when an operation needs it.
type ProviderMetadata struct {
	// Issuer is the provider's issuer identifier.
	Issuer string `json:"issuer,omitempty"`

	// AuthorizationEndpoint is where the user agent is redirected to log in.
	AuthorizationEndpoint string `json:"authorization_endpoint,omitempty"`

	// TokenEndpoint is where codes and refresh tokens are exchanged.
	TokenEndpoint string `json:"token_endpoint,omitempty"`

	// UserInfoEndpoint serves the authenticated user's claims.
	UserInfoEndpoint string `json:"userinfo_endpoint,omitempty"`

	// JWKSUri advertises the provider's signing keys. Unused by this
	// strategy (no local token verification) but retained for hosts.
	JWKSUri string `json:"jwks_uri,omitempty"`

	// SupportedScopes lists the scopes the provider advertises.
	SupportedScopes []string `json:"scopes_supported,omitempty"`

	// SupportedClaims lists the claims the provider advertises.
	SupportedClaims []string `json:"claims_supported,omitempty"`
}
