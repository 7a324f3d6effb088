package oidc

import (
	"net/url"

	"github.com/skillsenselab/authflow/errors"
)

// authorizationURL builds the provider redirect from metadata and client
// configuration. Pure function: given the same inputs it produces a
// byte-identical URL (url.Values encodes keys in sorted order).
//
// The query carries exactly response_type=code, client_id, scope, and
// redirect_uri. No PKCE challenge, state, or nonce is added; hosts that
// need CSRF protection must layer it themselves.
func authorizationURL(md *ProviderMetadata, client *ClientConfig) (string, error) {
	if md == nil || md.AuthorizationEndpoint == "" {
		return "", errors.ConfigurationMissing("authorization_endpoint")
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", client.ID)
	q.Set("scope", client.scopeString())
	q.Set("redirect_uri", client.RedirectURL)

	return md.AuthorizationEndpoint + "?" + q.Encode(), nil
}
