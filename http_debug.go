package apiclient

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// debugTransport logs request and response dumps for troubleshooting.
//
// Enable with WithDebugLogging(true), APICLIENT_DEBUG=true or DEBUG=true.
// Dumps include bodies; the bearer token is masked but payloads are not, so
// keep this off in production.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_dump", redactBearer(string(reqDump), req.Header)).
			Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

func redactBearer(dump string, h http.Header) string {
	auth := h.Get(headerAuthorization)
	if !strings.HasPrefix(auth, bearerPrefix) || auth == bearerPrefix {
		return dump
	}
	return strings.ReplaceAll(dump, auth, bearerPrefix+"[REDACTED]")
}

// debugLoggingRequested reports whether APICLIENT_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("APICLIENT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
