// Package apiclient provides the shared HTTP client used to talk to the
// application's backend API. Every request is resolved against the fixed
// BasePath and carries a bearer token read fresh from a TokenProvider.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mycelian/mycelian-memory/apiclient/devmode"
	"github.com/mycelian/mycelian-memory/apiclient/internal/logger"
)

// BasePath is prepended to every relative request path.
const BasePath = "/api"

const defaultHTTPTimeout = 30 * time.Second

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the configured backend API client. Construct it once with New and
// share it between call sites; it is safe for concurrent use and is never
// reconfigured after construction.
type Client struct {
	baseURL   string
	http      *http.Client
	rest      *resty.Client
	tokens    TokenProvider
	logger    *zerolog.Logger
	userAgent string
	debug     bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client bound to origin+BasePath. tokens is consulted on
// every request; see TokenProvider.
func New(origin string, tokens TokenProvider, opts ...Option) (*Client, error) {
	if origin == "" {
		return nil, ErrEmptyOrigin
	}
	if tokens == nil {
		return nil, ErrNilTokenProvider
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	// origin is scheme+host only; anything else would end up in front of BasePath
	if !u.IsAbs() || u.Host == "" || u.User != nil ||
		strings.Trim(u.Path, "/") != "" || u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	c := &Client{
		baseURL: u.Scheme + "://" + u.Host + BasePath,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		tokens:  tokens,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = defaultLogger(c.debug)
	}
	c.wrapTransport()

	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		OnBeforeRequest(c.authorizeRequest).
		OnError(c.requestFailed)
	if c.userAgent != "" {
		c.rest.SetHeader("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("base_url", c.baseURL).
		Dur("timeout", c.http.Timeout).
		Bool("debug", c.debug).
		Msg("api client configured")

	return c, nil
}

// NewWithDevMode constructs a Client that authenticates with the shared
// development token. Only useful against a backend running in dev mode.
func NewWithDevMode(origin string, opts ...Option) (*Client, error) {
	return New(origin, StaticToken(devmode.Token), opts...)
}

// wrapTransport installs the debug and metrics transports around whatever
// base transport the options left in place.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, logger: *c.logger}
	}
	c.http.Transport = promhttp.InstrumentRoundTripperCounter(requestsTotal, base)
}

// defaultLogger is the service JSON logger, at debug level only when debug
// logging was requested.
func defaultLogger(debug bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := logger.New("apiclient").Level(level)
	return &l
}

// authorizeRequest is the single pre-request hook registered on the client.
func (c *Client) authorizeRequest(_ *resty.Client, r *resty.Request) error {
	return authorize(r.Context(), r.Header, c.tokens)
}

// requestFailed is the error hook. The caller receives err untouched from
// resty; this only records that it happened.
func (c *Client) requestFailed(r *resty.Request, _ error) {
	requestFailuresTotal.WithLabelValues(r.Method).Inc()
}

// BaseURL returns the URL every relative request path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Requests
// --------------------------------------------------------------------

// R returns a bare request builder bound to ctx. The pre-request hook still
// runs when it is executed.
func (c *Client) R(ctx context.Context) *resty.Request {
	return c.rest.R().SetContext(ctx)
}

// Do issues method against path. Relative paths are resolved against BaseURL;
// absolute URLs are sent as-is.
func (c *Client) Do(ctx context.Context, method, path string, opts ...RequestOption) (*resty.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := c.R(ctx)
	for _, opt := range opts {
		opt(req)
	}
	return req.Execute(method, path)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts...)
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodHead, path, opts...)
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodOptions, path, opts...)
}

// Post issues a POST request. Supply the payload with WithBody.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodPost, path, opts...)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodPut, path, opts...)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodPatch, path, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, opts...)
}
