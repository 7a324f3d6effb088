package oidc

import (
	"context"
	"time"

	"github.com/skillsenselab/authflow/strategy"
)

// Token holds the tokens returned by the provider's token endpoint.
// Ownership transfers to the verify callback; the strategy keeps no copy.
type Token struct {
	// AccessToken authorizes calls against the provider's APIs.
	AccessToken string `json:"access_token"`

	// RefreshToken, when the provider grants one, renews the access
	// token without the user present.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is the Authorization header scheme, normally "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in,omitempty"`

	// Scope is the granted scope string (may differ from requested).
	Scope string `json:"scope,omitempty"`
}

// UserInfo carries the standard claims from the provider's userinfo
// endpoint. Only standard fields are typed; provider-specific claims are
// available through Raw.
type UserInfo struct {
	// Subject is the provider's stable identifier for this user.
	Subject string `json:"sub"`

	// Email as asserted by the provider; empty when outside the
	// granted scope.
	Email string `json:"email,omitempty"`

	// EmailVerified reports whether the provider checked the address.
	EmailVerified bool `json:"email_verified,omitempty"`

	// Name is the full display name.
	Name string `json:"name,omitempty"`

	// GivenName is the first name.
	GivenName string `json:"given_name,omitempty"`

	// FamilyName is the last name.
	FamilyName string `json:"family_name,omitempty"`

	// Picture is a profile image URL.
	Picture string `json:"picture,omitempty"`

	// Locale is a BCP 47 language tag such as "en-US".
	Locale string `json:"locale,omitempty"`

	// Address is the user's postal address claim, if the provider returned one.
	Address *Address `json:"address,omitempty"`

	// Raw holds every claim the provider sent, typed fields included,
	// so hosts can read what the struct does not model.
	Raw map[string]interface{} `json:"raw,omitempty"`
}

// Address is the OIDC address claim sub-object.
type Address struct {
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
}

// claimSet reads optional claims out of a decoded JSON object without
// caring whether a key is absent or mistyped.
type claimSet map[string]interface{}

func (c claimSet) str(name string) string {
	s, _ := c[name].(string)
	return s
}

func (c claimSet) flag(name string) bool {
	b, _ := c[name].(bool)
	return b
}

// userInfoFromClaims builds a UserInfo from a decoded claims object,
// keeping the full claim set in Raw.
func userInfoFromClaims(claims map[string]interface{}) *UserInfo {
	cs := claimSet(claims)
	info := &UserInfo{
		Subject:       cs.str("sub"),
		Email:         cs.str("email"),
		EmailVerified: cs.flag("email_verified"),
		Name:          cs.str("name"),
		GivenName:     cs.str("given_name"),
		FamilyName:    cs.str("family_name"),
		Picture:       cs.str("picture"),
		Locale:        cs.str("locale"),
		Raw:           claims,
	}
	if addr, ok := claims["address"].(map[string]interface{}); ok {
		as := claimSet(addr)
		info.Address = &Address{
			Formatted:     as.str("formatted"),
			StreetAddress: as.str("street_address"),
			Locality:      as.str("locality"),
			Region:        as.str("region"),
			PostalCode:    as.str("postal_code"),
			Country:       as.str("country"),
		}
	}
	return info
}

// Identity is the authenticated result handed to the verify callback:
// the token set, the userinfo claims, and the computed expiry.
type Identity struct {
	// Token is the token set from the exchange.
	Token *Token

	// UserInfo is the claims object from the userinfo endpoint.
	UserInfo *UserInfo

	// ExpiresAt is when the access token expires (now + expires_in).
	ExpiresAt time.Time
}

// VerifyFunc maps an authenticated identity to an application-level outcome.
// Hosts supply it at construction: it typically looks up or provisions a
// user record and returns it inside the outcome. The strategy treats the
// returned outcome as opaque.
type VerifyFunc func(ctx context.Context, req *strategy.Request, identity *Identity) (*strategy.Outcome, error)
