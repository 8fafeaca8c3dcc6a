// Package client implements the upstream REST APIs the web app reads from and
// writes to. Every call carries a bearer token and is traced through otelhttp.
package client

import (
	"bytes"
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
	"github.com/acp/web/internal/infrastructure/config"
	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response is kept for logs
const maxErrorBody = 2048

// RestClient performs JSON requests against one upstream API
type RestClient struct {
	name       string
	baseURL    string
	httpClient *http.Client
	metrics    *telemetry.WorkflowMetrics
}

// Option configures a RestClient
type Option func(*RestClient)

// WithHTTPClient replaces the default otelhttp-instrumented client
func WithHTTPClient(c *http.Client) Option {
	return func(r *RestClient) {
		r.httpClient = c
	}
}

// WithMetrics records call durations on m
func WithMetrics(m *telemetry.WorkflowMetrics) Option {
	return func(r *RestClient) {
		r.metrics = m
	}
}

// NewRestClient creates a client for the API named name
func NewRestClient(name string, cfg config.APIConfig, opts ...Option) *RestClient {
	c := &RestClient{
		name:    name,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return name + " " + r.Method
				}),
			),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the API name used in logs and metrics
func (c *RestClient) Name() string {
	return c.name
}

// Get decodes the JSON response of GET path into out
func (c *RestClient) Get(ctx context.Context, token, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, token, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out, if non-nil
func (c *RestClient) Post(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, token, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out, if non-nil
func (c *RestClient) Put(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, token, path, nil, body, out)
}

func (c *RestClient) do(ctx context.Context, method, token, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", c.name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequest(ctx, c.name, method, "error", time.Since(start))
		return shared.WrapDomainError(shared.CodeUpstream, c.name+" request failed", err)
	}
	defer resp.Body.Close()

	c.metrics.UpstreamRequest(ctx, c.name, method, outcomeOf(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(ctx, req, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return shared.WrapDomainError(shared.CodeUpstream, c.name+" returned an unreadable response", err)
	}
	return nil
}

// statusError maps an error response onto a domain error
func (c *RestClient) statusError(ctx context.Context, req *http.Request, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := &StatusError{API: c.name, Method: req.Method, Path: req.URL.Path, StatusCode: resp.StatusCode, Body: string(snippet)}

	logger.L(ctx).Warn("Upstream request failed",
		zap.String("api", c.name),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
	)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return shared.WrapDomainError(shared.CodeNotFound, c.name+" resource not found", cause)
	case http.StatusUnauthorized:
		return shared.WrapDomainError(shared.CodeUnauthorized, c.name+" rejected the token", cause)
	case http.StatusForbidden:
		return shared.WrapDomainError(shared.CodeForbidden, c.name+" denied access", cause)
	default:
		return shared.WrapDomainError(shared.CodeUpstream, c.name+" request failed", cause)
	}
}

func outcomeOf(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "success"
	}
}

// StatusError describes a non-2xx response from an upstream API
type StatusError struct {
	API        string
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s: HTTP %d", e.API, e.Method, e.Path, e.StatusCode)
}

// StatusCodeOf returns the HTTP status carried by err, or 0
func StatusCodeOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
