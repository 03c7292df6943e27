package yahoo

import (
	"github.com/dmvaldez/finscope/pkg/httputil"
	"github.com/dmvaldez/finscope/pkg/logger"
	"github.com/dmvaldez/finscope/pkg/redis"
)

// Client talks to the Yahoo Finance v8/v10 JSON APIs. It implements
// the price, fundamentals and dividend provider contracts. Snapshot
// and statement responses go through the cache when one is wired;
// price panels are always fetched fresh.
type Client struct {
	httpClient    *httputil.Client
	cache         *redis.Cache
	logger        *logger.Logger
	baseURL       string
	webURL        string
	maxConcurrent int
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a response cache.
func WithCache(cache *redis.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURL overrides the API host. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithWebURL overrides the website host used for profile scraping.
func WithWebURL(url string) Option {
	return func(c *Client) { c.webURL = url }
}

// WithMaxConcurrent bounds parallel per-symbol fetches.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxConcurrent = n
		}
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:    httpClient,
		logger:        log,
		baseURL:       "https://query1.finance.yahoo.com",
		webURL:        "https://finance.yahoo.com",
		maxConcurrent: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError is the error object Yahoo embeds in every envelope.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v *rawValue) value() float64 {
	if v == nil || v.Raw == nil {
		return 0
	}
	return *v.Raw
}

func (v *rawValue) valid() bool {
	return v != nil && v.Raw != nil
}
