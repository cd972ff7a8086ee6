package facturation

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
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the production API root
const DefaultBaseURL = "https://www.facturation.pro"

// Config holds the OAuth application credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// Scope is a space or comma separated list of OAuth scopes
	Scope string
}

// Validate checks the required credentials are present
func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	}
	if c.RedirectURI != "" {
		if _, err := url.ParseRequestURI(c.RedirectURI); err != nil {
			return fmt.Errorf("%w: invalid redirect URI: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// scopes splits the configured scope string
func (c Config) scopes() []string {
	return strings.FieldsFunc(c.Scope, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

// Client represents a facturation.pro API client
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	authClient *http.Client
	oauth      *oauth2.Config
	limiter    *RateLimiter
	logger     zerolog.Logger

	mu          sync.RWMutex
	tokenSource oauth2.TokenSource
}

// NewClient creates a new facturation.pro client. No request is made until
// a token is installed and an endpoint method is called.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	baseURL := strings.TrimRight(o.baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}

	var transport http.RoundTripper
	timeout := o.timeout
	if o.httpClient != nil {
		transport = o.httpClient.Transport
		if o.httpClient.Timeout > 0 {
			timeout = o.httpClient.Timeout
		}
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	limiter := NewRateLimiter(o.rateLimitBudget, o.rateLimitWindow, logger)

	client := &Client{
		baseURL:   baseURL,
		userAgent: o.userAgent,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &rateLimitTransport{base: transport, limiter: limiter},
		},
		authClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.scopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  baseURL + "/oauth/authorize",
				TokenURL: baseURL + "/oauth/token",
			},
		},
		limiter: limiter,
		logger:  logger,
	}

	if o.token != nil {
		client.SetToken(o.token)
	}

	return client, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RateLimiter exposes the tracker fed by every API response
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// CheckRateLimit reports whether at least n more requests fit in the tracked budget
func (c *Client) CheckRateLimit(n int) bool {
	return c.limiter.CheckRateLimit(n)
}

// Close releases the pending rate-limit reset
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest performs an HTTP request with the access token and returns the raw body
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body any) ([]byte, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("access_token", token)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if strings.HasSuffix(endpoint, ".pdf") {
		req.Header.Set("Accept", "application/pdf")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL carries the access token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + endpoint
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("remaining", c.limiter.Remaining()).
		Msg("facturation API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// getJSON issues a GET and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postJSON issues a POST with a JSON body and decodes the JSON response into out
func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	body, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// firmPath builds the path of a resource owned by a firm
func firmPath(firmID int64, format string, args ...any) string {
	return fmt.Sprintf("/firms/%d", firmID) + fmt.Sprintf(format, args...)
}
