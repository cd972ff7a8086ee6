package facturation

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	userAgent       string
	token           *oauth2.Token
	rateLimitWindow time.Duration
	rateLimitBudget int
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		baseURL:         DefaultBaseURL,
		timeout:         30 * time.Second,
		userAgent:       "facturation-go",
		rateLimitWindow: DefaultRateLimitWindow,
		rateLimitBudget: DefaultRateLimitBudget,
	}
}

// WithBaseURL overrides the API root. The OAuth endpoints are derived from it.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client whose transport carries API and OAuth traffic.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithToken installs a previously obtained token.
func WithToken(token *oauth2.Token) Option {
	return func(o *clientOptions) {
		o.token = token
	}
}

// WithRateLimitWindow sets how long the client must stay idle before the
// tracked budget is restored.
func WithRateLimitWindow(window time.Duration) Option {
	return func(o *clientOptions) {
		if window > 0 {
			o.rateLimitWindow = window
		}
	}
}

// WithRateLimitBudget sets the budget restored at the end of a window.
func WithRateLimitBudget(budget int) Option {
	return func(o *clientOptions) {
		if budget > 0 {
			o.rateLimitBudget = budget
		}
	}
}
