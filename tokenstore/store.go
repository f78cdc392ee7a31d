// Package tokenstore is the client-side key-value storage the API client reads
// its bearer token from.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey is the key the auth token is stored under.
const DefaultKey = "authToken"

// Store kinds accepted by Open.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("token store closed")

	// ErrUnsupportedKind is returned by Open for an unknown store kind.
	ErrUnsupportedKind = errors.New("unsupported token store kind")
)

// Getter reads a value. ok is false when key has no entry.
type Getter interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Store is a persistent string key-value store.
type Store interface {
	Getter
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns a store of the given kind. path is only used by KindSQLite.
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}
