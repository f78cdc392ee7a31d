package apiclient

import "errors"

var (
	// ErrEmptyOrigin is returned by New when no origin is given.
	ErrEmptyOrigin = errors.New("origin cannot be empty")

	// ErrInvalidOrigin is returned by New when the origin is not an absolute URL.
	ErrInvalidOrigin = errors.New("origin must be an absolute URL")

	// ErrNilTokenProvider is returned by New when tokens is nil.
	ErrNilTokenProvider = errors.New("token provider cannot be nil")
)
