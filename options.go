package apiclient

// This file defines functional options that configure the Client during
// construction, plus the per-request options accepted by the verb methods.

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run before the transport chain is assembled, so WithTransport and
// WithHTTPClient set the innermost transport and debug/metrics wrappers are
// layered on top regardless of option order.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding a single request end to end.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying http.Client. Its
// Transport becomes the base of the transport chain; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithTransport sets the base RoundTripper requests are dispatched through.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return errors.New("transport cannot be nil")
		}
		c.http.Transport = rt
		return nil
	}
}

// WithDebugLogging logs each request/response at debug level when enabled.
// Bearer tokens are redacted from the dumps, bodies are not.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithLogger sets the logger used for construction and debug output. Without
// it the client logs JSON to stdout at info level, debug when debug logging
// is enabled.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = &l
		return nil
	}
}

// WithUserAgent sets a default User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// RequestOption customises a single request before it is executed.
type RequestOption func(*resty.Request)

// WithBody sets the request payload. Structs and maps are JSON encoded.
func WithBody(body any) RequestOption {
	return func(r *resty.Request) { r.SetBody(body) }
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) { r.SetHeader(key, value) }
}

// WithQuery adds query parameters.
func WithQuery(params map[string]string) RequestOption {
	return func(r *resty.Request) { r.SetQueryParams(params) }
}

// WithResult decodes a successful response body into v.
func WithResult(v any) RequestOption {
	return func(r *resty.Request) { r.SetResult(v) }
}

// WithError decodes an error (status > 399) response body into v.
func WithError(v any) RequestOption {
	return func(r *resty.Request) { r.SetError(v) }
}
