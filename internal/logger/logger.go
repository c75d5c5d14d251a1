// Package logger configures the application's structured logging with
// zerolog.
//
// Development (dev): human-readable console output at DEBUG level.
// Staging: JSON output at DEBUG level.
// Production (prod): JSON output at INFO level.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout, configured for env.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	var (
		out   io.Writer = w
		level           = zerolog.DebugLevel
	)

	switch env {
	case "prod":
		level = zerolog.InfoLevel
	case "staging":
	default:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", env).
		Logger()
}
