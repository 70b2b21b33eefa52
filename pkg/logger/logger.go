// Package logger provides the structured slog loggers used across the
// plugin. JSON output goes to stdout for the host platform's log shipper;
// the no-op variant keeps components quiet in tests and when the host
// supplies its own logger.
package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger writing to stdout.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
