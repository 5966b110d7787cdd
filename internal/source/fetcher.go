package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dshills/multipick/internal/option"
)

// Fetcher retrieves the full option list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]option.Option, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]option.Option, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]option.Option, error) {
	return f(ctx)
}

const (
	// DefaultHTTPTimeout bounds a single list request.
	DefaultHTTPTimeout = 15 * time.Second

	// DefaultMaxBody caps the response size read from the endpoint.
	DefaultMaxBody = 32 << 20
)

var (
	// ErrStatus is matched by StatusError.
	ErrStatus = errors.New("unexpected response status")

	// ErrBodyTooLarge is returned when the response exceeds the body limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.Endpoint, e.Code)
}

// Is reports whether target is ErrStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// HTTPFetcher fetches the list with GET and decodes it as a coin list.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
	maxBody  int64
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the request timeout. The client is copied, so a client
// passed to WithHTTPClient keeps its own timeout and the copy keeps its
// transport, cookie jar and redirect policy.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			c := *f.client
			c.Timeout = d
			f.client = &c
		}
	}
}

// WithMaxBody sets the response size limit in bytes.
func WithMaxBody(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

// NewHTTPFetcher creates a fetcher for endpoint.
func NewHTTPFetcher(endpoint string, opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultHTTPTimeout},
		maxBody:  DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Endpoint returns the URL the fetcher requests.
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch requests the endpoint and decodes the body.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]option.Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", f.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Endpoint: f.endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.endpoint, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", f.endpoint, ErrBodyTooLarge, f.maxBody)
	}

	opts, err := option.DecodeCoinList(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.endpoint, err)
	}
	return opts, nil
}
