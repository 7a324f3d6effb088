package oidc

import (
	"context"
	"net/http"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/httpclient"
	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/observability"
)

// fetchUserInfo retrieves the authenticated user's claims from the
// userinfo endpoint, authorizing with "<token_type> <access_token>".
//
// Same collapsing policy as exchange: any failure surfaces as a single
// userinfo-fetch-failed error with the detail logged and retained as the
// inner cause.
func (s *Strategy) fetchUserInfo(ctx context.Context, md *ProviderMetadata, token *Token) (*UserInfo, error) {
	if md.UserInfoEndpoint == "" {
		return nil, errors.ConfigurationMissing("userinfo_endpoint")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanUserInfo)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrEndpoint, md.UserInfoEndpoint)

	resp, err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   md.UserInfoEndpoint,
		Auth:   httpclient.TokenAuth(token.TokenType, token.AccessToken),
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Warn("userinfo fetch failed", logger.Fields(
			logger.FieldEndpoint, md.UserInfoEndpoint,
			logger.FieldError, err.Error(),
		))
		return nil, errors.UserInfoFetchFailed(err)
	}

	var claims map[string]interface{}
	if err := resp.JSON(&claims); err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Warn("userinfo response not decodable", logger.Fields(
			logger.FieldEndpoint, md.UserInfoEndpoint,
			logger.FieldError, err.Error(),
		))
		return nil, errors.UserInfoFetchFailed(err)
	}

	return userInfoFromClaims(claims), nil
}
