// Package rest implements the remote evaluation API client over HTTP.
package rest

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/proctorai/proctor-go/internal/log"
	"github.com/proctorai/proctor-go/internal/model"
	"github.com/proctorai/proctor-go/internal/remote"
)

var _ remote.Client = (*Client)(nil)

const (
	defaultBaseURL = "https://api.proctor.dev/v1"
	defaultTimeout = 30 * time.Second

	apiKeyHeader    = "X-Api-Key"
	requestIDHeader = "X-Request-Id"
)

// ClientConfig is the configuration for the REST client.
type ClientConfig struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL is the API base URL. Default: the hosted evaluation API.
	BaseURL string
	// HTTPClient is the HTTP client used for transport. Default: a client
	// with a 30s per-request timeout.
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.REST"})
	return nil
}

// Client talks to the remote evaluation API over HTTP with JSON bodies.
// Stateless beyond its configuration, safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a new REST client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// errorEnvelope is the API error response body.
type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

// do is the core request method: marshal, send, map errors, unmarshal.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, result interface{}) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	reqID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("%s %s: %d (%s, req %s)", method, endpoint, resp.StatusCode, time.Since(start), reqID)

	if resp.StatusCode >= 400 {
		return c.mapAPIError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}

	return nil
}

// mapAPIError converts an API error response into the client error taxonomy.
// The error code prefix decides the kind; the HTTP status is the fallback
// when the body is not the expected envelope.
func (c *Client) mapAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Code != "" {
		e := envelope.Error
		sentinel := sentinelForCode(e.Code, resp.StatusCode)
		return fmt.Errorf("%s (code %s, request %s): %w", e.Message, e.Code, e.RequestID, sentinel)
	}

	return fmt.Errorf("HTTP %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(data)), sentinelForStatus(resp.StatusCode))
}

func sentinelForCode(code string, statusCode int) error {
	prefix, _, _ := strings.Cut(code, ".")
	switch prefix {
	case "auth":
		return model.ErrAuth
	case "rate_limit":
		return model.ErrRateLimited
	case "resource":
		return model.ErrNotFound
	case "validation":
		return model.ErrNotValid
	case "server":
		return model.ErrServer
	default:
		return sentinelForStatus(statusCode)
	}
}

func sentinelForStatus(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return model.ErrAuth
	case statusCode == http.StatusNotFound:
		return model.ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		return model.ErrRateLimited
	case statusCode >= 400 && statusCode < 500:
		return model.ErrNotValid
	default:
		return model.ErrServer
	}
}
