// Package bangumi provides a client for the Bangumi v0 API.
package bangumi

import (
	"net/http"
	"strings"
	"time"

	"github.com/cusox/bgmeta/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.bgm.tv/v0"
	defaultUserAgent     = "Cusox/calibre-bangumi"
	defaultSearchLimit   = 3
	defaultRatePerSecond = 4
)

// SubjectTypeBook is the Bangumi subject type for books. It doubles as the
// relation type linking sibling volumes of the same series.
const SubjectTypeBook = 1

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Bangumi API client.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	searchLimit int
}

// NewClient creates a new Bangumi API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		userAgent:   defaultUserAgent,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		rateLimiter: ratelimit.New("Bangumi", defaultRatePerSecond),
		searchLimit: defaultSearchLimit,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Bangumi API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithSearchLimit sets the result cap requested from the search endpoint.
func WithSearchLimit(limit int) Option {
	return func(client *Client) {
		if limit > 0 {
			client.searchLimit = limit
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}
