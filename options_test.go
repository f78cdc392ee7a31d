package apiclient

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWithHTTPTimeout(t *testing.T) {
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}
	if err := WithHTTPTimeout(-time.Second)(c); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestWithHTTPClient(t *testing.T) {
	if _, err := New("http://example.com", StaticToken(""), WithHTTPClient(nil)); err == nil {
		t.Fatalf("expected error for nil http client")
	}
	if _, err := New("http://example.com", StaticToken(""), WithTransport(nil)); err == nil {
		t.Fatalf("expected error for nil transport")
	}

	var called bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})}
	c, err := New("http://example.com", StaticToken("t"), WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Get(context.Background(), "/ping"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !called {
		t.Fatalf("supplied http client transport not used")
	}
}

func TestWithUserAgent(t *testing.T) {
	var ua string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		ua = r.Header.Get("User-Agent")
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	c, err := New("http://example.com", StaticToken(""), WithTransport(rt), WithUserAgent("apiclient-test/1.0"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Get(context.Background(), "/ping"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ua != "apiclient-test/1.0" {
		t.Fatalf("User-Agent = %q", ua)
	}
}

func TestDebugLogging_RedactsToken(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})

	c, err := New("http://example.com", StaticToken("s3cret-token"),
		WithTransport(rt), WithDebugLogging(true), WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Get(context.Background(), "/users"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "HTTP request") || !strings.Contains(out, "HTTP response") {
		t.Fatalf("expected request and response debug logs, got: %s", out)
	}
	if strings.Contains(out, "s3cret-token") {
		t.Fatalf("token leaked into debug log: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected redaction marker in: %s", out)
	}
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("APICLIENT_DEBUG", "true")
	c, err := New("http://example.com", StaticToken(""))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.debug {
		t.Fatalf("expected debug logging when APICLIENT_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	dt := &debugTransport{base: rt, logger: zerolog.Nop()}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := dt.RoundTrip(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}

func TestRedactBearer(t *testing.T) {
	h := http.Header{}
	if got := redactBearer("GET / HTTP/1.1", h); got != "GET / HTTP/1.1" {
		t.Fatalf("unexpected change without header: %q", got)
	}
	h.Set("Authorization", "Basic abc")
	if got := redactBearer("Authorization: Basic abc", h); got != "Authorization: Basic abc" {
		t.Fatalf("non-bearer header should pass through: %q", got)
	}
	h.Set("Authorization", "Bearer abc")
	if got := redactBearer("Authorization: Bearer abc\r\n", h); got != "Authorization: Bearer [REDACTED]\r\n" {
		t.Fatalf("unexpected redaction: %q", got)
	}
}

func TestDefaultLogger(t *testing.T) {
	if got := defaultLogger(false).GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("default level = %v, want info", got)
	}
	if got := defaultLogger(true).GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("debug level = %v, want debug", got)
	}

	c, err := New("http://example.com", StaticToken(""))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.logger == nil || c.logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected default info logger when WithLogger is not given")
	}

	quiet := zerolog.Nop()
	c, err = New("http://example.com", StaticToken(""), WithLogger(quiet))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.logger.GetLevel() != zerolog.Disabled {
		t.Fatalf("WithLogger not applied")
	}
}
