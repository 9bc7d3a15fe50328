// Package logging configures structured logging using Go's slog package.
// Logs go to stderr so the report stream on stdout stays machine-readable.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Init installs the default logger. Every invocation is tagged with a
// fresh run ID so interleaved CI logs stay attributable.
func Init(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, opts)).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}
