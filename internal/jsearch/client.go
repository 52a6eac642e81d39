package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Static errors for JSearch client operations.
var (
	// ErrAPIKeyNotSet is returned when no API key is configured.
	ErrAPIKeyNotSet = errors.New("jsearch: API key is not set")
	// ErrQueryRequired is returned when a search has no query text.
	ErrQueryRequired = errors.New("jsearch: query is required")
	// ErrJobIDRequired is returned when a details lookup has no job ID.
	ErrJobIDRequired = errors.New("jsearch: job ID is required")
	// ErrServerError is returned when the server returns a 5xx status code.
	ErrServerError = errors.New("jsearch: server error")
	// ErrRateLimited is returned when the server returns a 429 status code.
	ErrRateLimited = errors.New("jsearch: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code
	// or the API reports an error in the response body.
	ErrRequestFailed = errors.New("jsearch: request failed")
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	defaultHost    = "jsearch.p.rapidapi.com"
)

// Client defines the interface for looking up job listings.
type Client interface {
	// Search returns the listings matching params. The result may be empty.
	Search(ctx context.Context, params SearchParams) ([]Job, error)

	// Details returns the listings for a single job ID, usually zero or one.
	Details(ctx context.Context, jobID string) ([]Job, error)
}

// HTTPClient is the HTTP implementation of the Client interface.
type HTTPClient struct {
	apiKey      string
	host        string
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// WithBaseURL sets a custom base URL for the API. Empty keeps the default.
func WithBaseURL(u string) ClientOption {
	return func(hc *HTTPClient) {
		if u != "" {
			hc.baseURL = u
		}
	}
}

// WithHost overrides the X-RapidAPI-Host header value. Empty keeps the default.
func WithHost(host string) ClientOption {
	return func(hc *HTTPClient) {
		if host != "" {
			hc.host = host
		}
	}
}

// WithMaxRetries sets the maximum number of retries for transient failures.
func WithMaxRetries(n int) ClientOption {
	return func(hc *HTTPClient) {
		hc.maxRetries = n
	}
}

// WithBaseBackoff sets the initial backoff duration for retries.
func WithBaseBackoff(d time.Duration) ClientOption {
	return func(hc *HTTPClient) {
		hc.baseBackoff = d
	}
}

// NewClient creates a new JSearch HTTP client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) (*HTTPClient, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	c := &HTTPClient{
		apiKey:      apiKey,
		host:        defaultHost,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		maxRetries:  2,
		baseBackoff: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Search queries GET /search.
func (c *HTTPClient) Search(ctx context.Context, params SearchParams) ([]Job, error) {
	if params.Query == "" {
		return nil, ErrQueryRequired
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.NumPages < 1 {
		params.NumPages = 1
	}

	q := url.Values{}
	q.Set("query", params.Query)
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("num_pages", strconv.Itoa(params.NumPages))

	return c.list(ctx, "/search", q)
}

// Details queries GET /job-details for a single job.
func (c *HTTPClient) Details(ctx context.Context, jobID string) ([]Job, error) {
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	q := url.Values{}
	q.Set("job_id", jobID)
	q.Set("extended_publisher_details", "false")

	return c.list(ctx, "/job-details", q)
}

func (c *HTTPClient) list(ctx context.Context, path string, q url.Values) ([]Job, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()

	var resp listResponse
	if err := c.doRequestWithRetry(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error.Message)
	}
	if resp.Data == nil {
		return []Job{}, nil
	}
	return resp.Data, nil
}

// doRequestWithRetry performs a GET request with exponential backoff retry.
func (c *HTTPClient) doRequestWithRetry(ctx context.Context, endpoint string, result any) error {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("jsearch: context cancelled: %w", ctx.Err())
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		err := c.doRequest(ctx, endpoint, result)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("jsearch: max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request.
func (c *HTTPClient) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("jsearch: create request: %w", err)
	}

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("jsearch: request failed: %w", err)
		}
		return &retryableError{err: fmt.Errorf("jsearch: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{err: fmt.Errorf("jsearch: read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return &retryableError{err: fmt.Errorf("%w %d: %s", ErrServerError, resp.StatusCode, string(respBody))}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return &retryableError{err: fmt.Errorf("%w: %s", ErrRateLimited, string(respBody))}
		}
		return fmt.Errorf("%w with status %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("jsearch: unmarshal response: %w", err)
	}

	return nil
}

// retryableError wraps errors that should be retried.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// isRetryable returns true if the error should be retried.
func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
