package webclient

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// Default client limits. Image renditions from Commons can be large, so the
// body limit is generous compared to an HTML-only scraper.
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 50 * 1024 * 1024 // 50MB
	defaultReferer     = "https://commons.wikimedia.org/"
)

// Client is an HTTP client for scraping HTML pages and fetching media bytes.
// It wraps *http.Client with the randomized header policy and a response
// body size limit.
type Client struct {
	// hc performs the actual requests. Redirects are followed; the final
	// URL after redirects is reported on the Response.
	hc *http.Client

	// userAgents is the User-Agent rotation pool.
	userAgents []string

	// referer is sent with every request. Empty disables the header.
	referer string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64

	// rng drives User-Agent selection.
	rng *rand.Rand
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
// Useful for tests and for custom timeouts or transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithUserAgents replaces the User-Agent rotation pool.
// An empty slice keeps the default pool.
func WithUserAgents(agents []string) Option {
	return func(c *Client) {
		if len(agents) > 0 {
			c.userAgents = agents
		}
	}
}

// WithReferer sets the Referer header sent with every request.
func WithReferer(referer string) Option {
	return func(c *Client) {
		c.referer = referer
	}
}

// WithMaxBodySize sets the maximum number of response bytes to read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithRandSource fixes the random source used for User-Agent rotation so
// tests can make header selection deterministic.
func WithRandSource(src rand.Source) Option {
	return func(c *Client) {
		c.rng = rand.New(src) //nolint:gosec // Header rotation needs no cryptographic randomness
	}
}

// New creates a Client with browser-like defaults.
func New(opts ...Option) *Client {
	c := &Client{
		hc:          &http.Client{Timeout: defaultTimeout},
		userAgents:  defaultUserAgents,
		referer:     defaultReferer,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // Header rotation needs no cryptographic randomness
	}

	return c
}

// Response is the result of a Get. The body is fully read so callers can
// parse it multiple times without managing the connection.
type Response struct {
	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// Header holds the final response headers.
	Header http.Header

	// Body is the response body, truncated at the client's size limit.
	Body []byte

	// FinalURL is the request URL after following redirects. Callers use
	// it to detect a listing page that redirected to a search page.
	FinalURL string
}

// Get fetches the URL with the randomized header set and returns the fully
// read response. A non-2xx status is not an error; callers decide how to
// treat it.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
