// Package logger provides the configured zerolog loggers.
package logger

import (
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// stackTracer is implemented by github.com/pkg/errors values.
type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// configureErrorMarshaling makes .Stack() render a stack for any error,
// attaching one when the error does not already carry it.
func configureErrorMarshaling() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
}

// New returns a JSON logger on stdout tagged with service.
// Call sites should use .Stack() on error events to include stacks.
func New(service string) zerolog.Logger {
	return NewWithWriter(os.Stdout, service)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, service string) zerolog.Logger {
	configureErrorMarshaling()
	return zerolog.New(w).With().
		Str("service", service).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger for CLI use. debug lowers the
// level to Debug; otherwise Info.
func NewConsole(w io.Writer, debug bool) zerolog.Logger {
	configureErrorMarshaling()
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}
