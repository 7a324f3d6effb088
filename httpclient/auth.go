package httpclient

import "net/http"

// AuthType selects how a request authenticates.
type AuthType int

const (
	// AuthNone sends no credentials.
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthToken sends "Authorization: <scheme> <token>" with a
	// caller-supplied scheme.
	AuthToken
	// AuthBasic sends HTTP basic credentials.
	AuthBasic
)

// AuthConfig is the credential attached to a client or to one request.
type AuthConfig struct {
	Type  AuthType
	Token string
	// Scheme qualifies AuthToken. Providers report it as the token type,
	// "Bearer" for nearly all of them.
	Scheme   string
	Username string
	Password string
}

// BearerAuth sends token as a bearer credential.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{
		Type:  AuthBearer,
		Token: token,
	}
}

// TokenAuth sends "<scheme> <token>". An empty scheme falls back to
// Bearer.
func TokenAuth(scheme, token string) *AuthConfig {
	return &AuthConfig{
		Type:   AuthToken,
		Scheme: scheme,
		Token:  token,
	}
}

// BasicAuth sends username and password as basic credentials, the
// client_secret_basic style that token endpoints accept.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{
		Type:     AuthBasic,
		Username: username,
		Password: password,
	}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Type == AuthNone {
		return
	}
	if a.Type == AuthBasic {
		req.SetBasicAuth(a.Username, a.Password)
		return
	}

	scheme := "Bearer"
	if a.Type == AuthToken && a.Scheme != "" {
		scheme = a.Scheme
	}
	req.Header.Set("Authorization", scheme+" "+a.Token)
}
