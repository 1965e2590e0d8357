package edsm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/litescript/habzone/internal/version"
)

const (
	// DefaultURL is the catalog's bodies-per-system endpoint.
	DefaultURL = "https://www.edsm.net/api-system-v1/bodies"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// DefaultCacheSize is the number of systems whose responses are kept.
	DefaultCacheSize = 32

	// DefaultCacheTTL is how long a cached response is served.
	DefaultCacheTTL = 5 * time.Minute
)

// ErrUnavailable marks a failed fetch or an undecodable response.
var ErrUnavailable = errors.New("catalog unavailable")

// Client fetches system bodies from the catalog.
type Client struct {
	client   *http.Client
	url      string
	timeout  time.Duration
	limiter  *rate.Limiter
	cache    *lru.Cache[string, cachedSystem]
	cacheTTL time.Duration
}

// cachedSystem stores a decoded response.
type cachedSystem struct {
	system    *System
	fetchedAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithURL sets a custom endpoint.
func WithURL(u string) Option {
	return func(c *Client) {
		c.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithRateLimit limits outgoing requests. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCache sets the response cache size and TTL. A non-positive size
// disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache, _ = lru.New[string, cachedSystem](size)
	}
}

// NewClient creates a catalog client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:      DefaultURL,
		timeout:  DefaultTimeout,
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
		cacheTTL: DefaultCacheTTL,
	}
	c.cache, _ = lru.New[string, cachedSystem](DefaultCacheSize)

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// Result is the outcome of a catalog fetch, tagged with the system name it
// was requested for.
type Result struct {
	System    string
	Data      *System
	FetchedAt time.Time
	Duration  time.Duration
	Cached    bool
	Error     error
}

// Fetch retrieves the bodies of a system. Failures are reported in
// Result.Error, wrapping ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, system string) Result {
	start := time.Now()
	result := Result{
		System:    system,
		FetchedAt: start,
	}

	if cached, ok := c.lookup(system); ok {
		result.Data = cached
		result.Cached = true
		return result
	}

	raw, err := c.fetchRaw(ctx, system)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = fmt.Errorf("%w: %w", ErrUnavailable, err)
		return result
	}

	data, err := Parse(raw)
	if err != nil {
		result.Error = fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
		return result
	}
	result.Data = data

	if c.cache != nil {
		c.cache.Add(system, cachedSystem{system: data, fetchedAt: time.Now()})
	}
	return result
}

func (c *Client) lookup(system string) (*System, bool) {
	if c.cache == nil {
		return nil, false
	}
	cached, ok := c.cache.Get(system)
	if !ok {
		return nil, false
	}
	if time.Since(cached.fetchedAt) >= c.cacheTTL {
		c.cache.Remove(system)
		return nil, false
	}
	return cached.system, true
}

// Invalidate drops any cached response for a system.
func (c *Client) Invalidate(system string) {
	if c.cache != nil {
		c.cache.Remove(system)
	}
}

func (c *Client) fetchRaw(ctx context.Context, system string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	params := url.Values{}
	params.Set("systemName", system)
	reqURL := c.url + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "habzone/"+version.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch system bodies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}
