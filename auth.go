package apiclient

import (
	"context"
	"net/http"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// TokenProvider yields the bearer token for an outgoing request. ok is false
// when no token is stored. It is called once per request and its result is
// never cached by the client.
type TokenProvider interface {
	Token(ctx context.Context) (token string, ok bool, err error)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, bool, error)

// Token calls f(ctx).
func (f TokenProviderFunc) Token(ctx context.Context) (string, bool, error) { return f(ctx) }

// StaticToken returns a provider that always yields token. An empty token
// reads as absent.
func StaticToken(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context) (string, bool, error) {
		return token, token != "", nil
	})
}

// authorize sets the Authorization header from tokens. Provider errors are
// returned unchanged. When no token is available (including the empty string)
// the header is left exactly as it was.
func authorize(ctx context.Context, header http.Header, tokens TokenProvider) error {
	token, ok, err := tokens.Token(ctx)
	if err != nil {
		return err
	}
	if !ok || token == "" {
		return nil
	}
	header.Set(headerAuthorization, bearerPrefix+token)
	return nil
}
