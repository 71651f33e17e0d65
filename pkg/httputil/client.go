package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	regerrors "github.com/matzehuels/npmregistry/pkg/errors"
	"github.com/matzehuels/npmregistry/pkg/observability"
)

// DefaultTimeout bounds a single request when [Options.Timeout] is zero.
const DefaultTimeout = 10 * time.Second

// StatusError records a non-success HTTP response. It is the cause of every
// status-derived error returned by [Client].
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Options configures a [Client]. The zero value is usable.
type Options struct {
	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client

	// Headers are applied to every request.
	Headers map[string]string

	// Timeout bounds each request. Zero means [DefaultTimeout].
	Timeout time.Duration

	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64

	// Burst is the limiter bucket size. Values below 1 are treated as 1.
	Burst int

	// Logger receives debug-level request logs. Nil discards them.
	Logger *log.Logger
}

// Client performs JSON GET requests against a registry. It applies default
// headers, client-side rate limiting and observability hooks, and maps
// responses onto the codes in package errors. It never retries.
//
// A Client is safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(opts.Timeout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}
	return &Client{
		http:    hc,
		headers: opts.Headers,
		limiter: limiter,
		logger:  logger,
	}
}

// NewHTTPClient creates an HTTP client with the given per-request timeout,
// or [DefaultTimeout] when timeout is zero.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return regerrors.Wrap(regerrors.ErrCodeDecode, err, "decode response from %s", redact(url))
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, regerrors.Wrap(regerrors.ErrCodeInvalidConfig, err, "build request for %s", rawURL)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, transportError(ctxErr, rawURL)
			}
			// Wait refuses up front when the deadline falls before the next slot.
			return nil, regerrors.Wrap(regerrors.ErrCodeTimeout, err, "GET %s", rawURL)
		}
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		c.logger.Debug("request failed", "url", rawURL, "err", err)
		return nil, transportError(err, rawURL)
	}
	elapsed := time.Since(start)
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, elapsed)
	c.logger.Debug("GET", "url", rawURL, "status", resp.StatusCode, "elapsed", elapsed.Round(time.Millisecond))

	if err := checkStatus(resp, rawURL); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func transportError(err error, rawURL string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return regerrors.Wrap(regerrors.ErrCodeTimeout, err, "GET %s", rawURL)
	}
	return regerrors.Wrap(regerrors.ErrCodeNetwork, err, "GET %s", rawURL)
}

func checkStatus(resp *http.Response, rawURL string) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	status := &StatusError{StatusCode: code, Status: resp.Status, URL: redact(rawURL)}
	if status.Status == "" {
		status.Status = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}

	switch code {
	case http.StatusNotFound:
		return regerrors.Wrap(regerrors.ErrCodeNotFound, status, "not found: %s", status.URL)
	case http.StatusUnauthorized:
		return regerrors.Wrap(regerrors.ErrCodeUnauthorized, status, "registry rejected credentials")
	case http.StatusForbidden:
		return regerrors.Wrap(regerrors.ErrCodeForbidden, status, "access denied: %s", status.URL)
	case http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return regerrors.Wrap(regerrors.ErrCodeRateLimited,
			&regerrors.RateLimitedError{RetryAfter: retryAfter, Message: status.Error()},
			"registry rate limit hit")
	default:
		return regerrors.Wrap(regerrors.ErrCodeHTTPStatus, status, "unexpected status %d", code)
	}
}

// redact strips userinfo so credentials embedded in a registry URL never
// reach error messages.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	return u.Redacted()
}
