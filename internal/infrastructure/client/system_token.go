package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acp/web/internal/domain/shared"
	"github.com/acp/web/internal/infrastructure/cache"
	"github.com/acp/web/internal/infrastructure/config"
	"github.com/acp/web/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// SystemTokenPrefix scopes cached system tokens in the shared store
	SystemTokenPrefix = "systemToken:"

	// tokenExpiryMargin expires cached tokens before the auth server does
	tokenExpiryMargin = 60 * time.Second

	anonymousTokenKey = "%ANONYMOUS%"
)

// tokenResponse is the OAuth2 token endpoint response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// SystemTokenClient obtains client-credentials tokens from HMPPS Auth on
// behalf of a user and caches them until shortly before they expire.
type SystemTokenClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	cache        cache.Store
}

// NewSystemTokenClient creates a token client caching into store
func NewSystemTokenClient(cfg config.AuthConfig, store cache.Store) *SystemTokenClient {
	return &SystemTokenClient{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		clientID:     cfg.SystemClientID,
		clientSecret: cfg.SystemClientSecret,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache: cache.NewPrefixed(store, SystemTokenPrefix),
	}
}

// GetSystemClientToken returns a system token scoped to username. An empty
// username yields an anonymous system token.
func (c *SystemTokenClient) GetSystemClientToken(ctx context.Context, username string) (string, error) {
	key := username
	if key == "" {
		key = anonymousTokenKey
	}

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		return string(cached), nil
	case !errors.Is(err, cache.ErrCacheMiss):
		// A broken cache should not block the request; fetch a fresh token.
		logger.L(ctx).Warn("System token cache read failed", zap.Error(err))
	}

	token, err := c.fetch(ctx, username)
	if err != nil {
		return "", err
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin
	if ttl > 0 {
		if err := c.cache.Set(ctx, key, []byte(token.AccessToken), ttl); err != nil {
			logger.L(ctx).Warn("System token cache write failed", zap.Error(err))
		}
	}
	return token.AccessToken, nil
}

func (c *SystemTokenClient) fetch(ctx context.Context, username string) (*tokenResponse, error) {
	query := url.Values{"grant_type": {"client_credentials"}}
	if username != "" {
		query.Set("username", username)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUpstream, "auth token request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, shared.WrapDomainError(shared.CodeUpstream, "auth token request failed", &StatusError{
			API:        "hmpps-auth",
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		})
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, shared.WrapDomainError(shared.CodeUpstream, "auth returned an unreadable token", err)
	}
	if token.AccessToken == "" {
		return nil, shared.NewDomainError(shared.CodeUpstream, "auth returned an empty token")
	}
	return &token, nil
}
