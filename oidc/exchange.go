package oidc

import (
	"context"
	"net/http"
	"net/url"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/httpclient"
	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/observability"
	"github.com/skillsenselab/authflow/util"
)

// GrantType selects the OAuth2 grant used at the token endpoint.
type GrantType string

const (
	// GrantAuthorizationCode exchanges an authorization code for tokens.
	GrantAuthorizationCode GrantType = "authorization_code"

	// GrantRefreshToken exchanges a refresh token for a fresh token set.
	GrantRefreshToken GrantType = "refresh_token"
)

// exchange trades a credential (authorization code or refresh token) for
// a token set at the provider's token endpoint.
//
// Any transport failure or non-decodable body is collapsed into a single
// token-exchange-failed error: the underlying detail is logged here and
// kept as the inner cause, but callers see one opaque kind.
func (s *Strategy) exchange(ctx context.Context, md *ProviderMetadata, grant GrantType, credential string) (*Token, error) {
	if md.TokenEndpoint == "" {
		return nil, errors.ConfigurationMissing("token_endpoint")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanTokenExchange)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrGrantType, string(grant))
	observability.SetSpanAttribute(ctx, observability.AttrEndpoint, md.TokenEndpoint)

	form := url.Values{}
	form.Set("client_id", s.config.Client.ID)
	form.Set("grant_type", string(grant))
	switch grant {
	case GrantRefreshToken:
		form.Set("refresh_token", credential)
	default:
		form.Set("code", credential)
	}
	form.Set("redirect_uri", s.config.Client.RedirectURL)
	form.Set("scope", s.config.Client.scopeString())

	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   md.TokenEndpoint,
		Body:   form,
	}
	if s.config.Client.TokenEndpointAuth == TokenAuthBasic {
		req.Auth = httpclient.BasicAuth(s.config.Client.ID, s.config.Client.Secret)
	} else {
		form.Set("client_secret", s.config.Client.Secret)
	}

	resp, err := s.http.Do(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Warn("token exchange failed", logger.Fields(
			logger.FieldGrantType, string(grant),
			logger.FieldEndpoint, md.TokenEndpoint,
			logger.FieldError, err.Error(),
		))
		return nil, errors.TokenExchangeFailed(err)
	}

	var token Token
	if err := resp.JSON(&token); err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Warn("token response not decodable", logger.Fields(
			logger.FieldGrantType, string(grant),
			logger.FieldEndpoint, md.TokenEndpoint,
			logger.FieldError, err.Error(),
		))
		return nil, errors.TokenExchangeFailed(err)
	}

	s.log.WithContext(ctx).Debug("token exchange succeeded", logger.Fields(
		logger.FieldGrantType, string(grant),
		logger.FieldAccessToken, util.MaskSecret(token.AccessToken, 4),
	))
	return &token, nil
}
