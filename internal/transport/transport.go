// Package transport implements the SDK's HTTP layer: authenticated requests
// with bounded retry for transient failures, correlation IDs, and
// translation of error responses into the pkg/apierr taxonomy.
//
// The per-request timeout applies per attempt, not across retries, so a
// retried call can take up to (maxRetries+1) * timeout in the worst case.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Defaults applied by New when the corresponding option is unset.
const (
	DefaultTimeout    = 120 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
	DefaultUserAgent  = "metadata-ai-go/0.1.0"
)

// HeaderProvider supplies authentication headers for every request.
type HeaderProvider interface {
	Headers() map[string]string
}

// EntityKind identifies the kind of entity a request concerns. It selects
// the specific not-found/not-enabled error kind on 403/404 responses.
type EntityKind string

const (
	EntityAgent   EntityKind = "agent"
	EntityBot     EntityKind = "bot"
	EntityPersona EntityKind = "persona"
	EntityAbility EntityKind = "ability"
)

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	entityKind EntityKind
	entityName string
}

// WithEntity attaches entity context to a request so error responses map to
// the entity-specific error kinds.
func WithEntity(kind EntityKind, name string) RequestOption {
	return func(o *requestOptions) {
		o.entityKind = kind
		o.entityName = name
	}
}

// SleepFunc waits for the given duration or until the context is done.
// Tests inject a no-op implementation to run the retry loop without real
// time passing.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Client.
type Options struct {
	// BaseURL is prepended to every request path. Required.
	BaseURL string
	// Auth supplies the Authorization header. Required.
	Auth HeaderProvider
	// Timeout bounds each attempt of a non-streaming request.
	Timeout time.Duration
	// MaxRetries is the number of retries after the initial attempt.
	// Zero means no retries; use a negative value to get the default.
	MaxRetries int
	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Logger receives debug logging. Nil disables logging.
	Logger *zerolog.Logger
	// Sleep overrides how retry delays are waited out.
	Sleep SleepFunc
	// HTTPClient overrides the underlying client for non-streaming calls.
	HTTPClient *http.Client
}

// Client is a retrying HTTP client bound to one base URL. It is safe for
// concurrent use; per-request state lives on the stack and the connection
// pool handles its own locking.
type Client struct {
	baseURL      string
	auth         HeaderProvider
	httpClient   *http.Client
	streamClient *http.Client
	maxRetries   int
	retryDelay   time.Duration
	userAgent    string
	logger       zerolog.Logger
	sleep        SleepFunc
}

// New creates a Client from opts, applying defaults for unset fields.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		auth:       opts.Auth,
		httpClient: httpClient,
		// Streaming responses outlive the per-attempt timeout; cancellation
		// comes from the request context instead.
		streamClient: &http.Client{Transport: httpClient.Transport},
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		userAgent:    userAgent,
		logger:       logger,
		sleep:        sleep,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, applyOptions(opts))
}

// Post performs a POST request with a JSON body and decodes the JSON
// response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, out, applyOptions(opts))
}

// PostStream performs a streaming POST request and returns the raw response
// body. Streaming requests are never retried: once bytes start flowing a
// retry would silently duplicate or truncate output. Error responses are
// detected and mapped before any bytes are handed to the caller.
func (c *Client) PostStream(ctx context.Context, path string, body any, opts ...RequestOption) (io.ReadCloser, error) {
	ro := applyOptions(opts)
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	requestID := newRequestID()
	logger := c.logger.With().Str("requestId", requestID).Logger()
	logger.Debug().Str("method", http.MethodPost).Str("path", path).Bool("stream", true).Msg("request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req, requestID, "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, mapError(resp.StatusCode, resp.Header, respBody, ro, logger)
	}
	return resp.Body, nil
}

// Close releases pooled connections. It is idempotent and safe to call
// while requests from other goroutines are in flight.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
	c.streamClient.CloseIdleConnections()
}

// do runs the retry loop for a non-streaming request. One correlation ID is
// generated per logical call and sent on every attempt so server-side logs
// can stitch retried attempts together.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte, out any, ro requestOptions) error {
	requestID := newRequestID()
	logger := c.logger.With().Str("requestId", requestID).Logger()
	logger.Debug().Str("method", method).Str("path", path).Msg("request")
	if len(body) > 0 {
		logger.Debug().Str("body", truncate(string(body), 200)).Msg("request body")
	}

	bo := c.newBackOff()
	for attempt := 0; ; attempt++ {
		requestURL := c.baseURL + path
		if len(params) > 0 {
			requestURL += "?" + params.Encode()
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		c.setHeaders(req, requestID, "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("%s %s: read response: %w", method, path, readErr)
		}

		if resp.StatusCode < 400 {
			logger.Debug().Int("status", resp.StatusCode).Str("body", truncate(string(respBody), 200)).Msg("response")
			if out == nil || len(respBody) == 0 {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}

		if attempt < c.maxRetries && retryable(resp.StatusCode) {
			delay := retryDelay(resp.Header, bo)
			logger.Debug().
				Int("attempt", attempt+1).
				Int("status", resp.StatusCode).
				Dur("delay", delay).
				Msg("retrying")
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
			continue
		}

		return mapError(resp.StatusCode, resp.Header, respBody, ro, logger)
	}
}

func (c *Client) setHeaders(req *http.Request, requestID, accept string) {
	for k, v := range c.auth.Headers() {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
}

func applyOptions(opts []RequestOption) requestOptions {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}

// newRequestID returns a short random correlation token.
func newRequestID() string {
	return uuid.NewString()[:8]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
