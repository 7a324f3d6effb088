package oidc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/skillsenselab/authflow/httpclient"
	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/observability"
)

// ensureConfiguration returns the provider metadata, fetching the
// discovery document on first use. Success is cached for the process
// lifetime; failure leaves the cache empty so a later call retries from
// scratch. Concurrent first calls are coalesced into a single fetch.
//
// Fetch and parse failures propagate raw: a non-2xx status surfaces as a
// typed httpclient error and a malformed body as a decode error, either
// of which fails the whole authenticate call.
func (s *Strategy) ensureConfiguration(ctx context.Context) (*ProviderMetadata, error) {
	s.mu.RLock()
	md := s.metadata
	s.mu.RUnlock()
	if md != nil {
		return md, nil
	}

	v, err, _ := s.group.Do("discovery", func() (interface{}, error) {
		s.mu.RLock()
		md := s.metadata
		s.mu.RUnlock()
		if md != nil {
			return md, nil
		}

		fetched, err := s.fetchConfiguration(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.metadata = fetched
		s.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProviderMetadata), nil
}

// fetchConfiguration retrieves and parses the discovery document.
func (s *Strategy) fetchConfiguration(ctx context.Context) (*ProviderMetadata, error) {
	wellKnown := strings.TrimRight(s.config.ServerURL, "/") + wellKnownPath

	ctx, span := observability.StartSpan(ctx, observability.SpanDiscovery)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrEndpoint, wellKnown)

	resp, err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   wellKnown,
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Warn("discovery fetch failed", logger.Fields(
			logger.FieldEndpoint, wellKnown,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	var md ProviderMetadata
	if err := resp.JSON(&md); err != nil {
		err = fmt.Errorf("oidc: decode discovery document: %w", err)
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	s.log.WithContext(ctx).Debug("provider metadata loaded", logger.Fields(
		logger.FieldIssuer, md.Issuer,
		logger.FieldEndpoint, wellKnown,
	))

	return &md, nil
}
