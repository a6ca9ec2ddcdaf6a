package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/wikigrab/internal/model"
)

// DefaultEndpoint is the English Wikipedia action API.
const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

// fetcherMaxBodySize caps how much of the API response is read. Rendered
// article HTML for large pages runs to a few megabytes.
const fetcherMaxBodySize = 20 * 1024 * 1024 // 20MB

// Fetcher retrieves structured article content through the MediaWiki
// parse API.
//
// Design decision: We call the structured API rather than scraping the
// article page because the API returns the section list, categories, and
// external links as data, and its output is stable across skin changes.
type Fetcher struct {
	// endpoint is the action API URL.
	endpoint string

	// client performs the requests. The API endpoint is well-behaved, so
	// no header rotation is needed here.
	client *http.Client

	// logger is used for request-level debug output.
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithEndpoint points the fetcher at a different action API, e.g. another
// language edition or a test server.
func WithEndpoint(endpoint string) FetcherOption {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithFetcherLogger sets the logger used for debug output.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher for the default endpoint.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// parseResponse is the top-level API response shape. Exactly one of Parse
// and Error is set on a well-formed response.
type parseResponse struct {
	Parse *model.ContentTree `json:"parse"`
	Error *apiErrorPayload   `json:"error"`
}

// apiErrorPayload is the API-level error object.
type apiErrorPayload struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Fetch requests the parsed content tree for the given page title.
//
// Contract: a non-2xx transport status yields *StatusError; an API-level
// error payload yields *APIError; a response with no parse object yields
// ErrNotFound. Otherwise the content tree is returned.
func (f *Fetcher) Fetch(ctx context.Context, title string) (*model.ContentTree, error) {
	q := url.Values{}
	q.Set("action", "parse")
	q.Set("page", title)
	q.Set("format", "json")
	q.Set("prop", "text|sections|displaytitle|images|categories|links|templates|externallinks")
	q.Set("disabletoc", "1")
	q.Set("disableeditsection", "1")

	requestURL := f.endpoint + "?" + q.Encode()
	f.logger.Debug("fetching article content", "title", title, "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetcherMaxBodySize))
	if err != nil {
		return nil, err
	}

	var pr parseResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if pr.Error != nil {
		return nil, &APIError{Code: pr.Error.Code, Info: pr.Error.Info}
	}
	if pr.Parse == nil {
		return nil, ErrNotFound
	}

	return pr.Parse, nil
}
