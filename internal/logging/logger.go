// Package logging provides structured logging configuration using log/slog.
//
// Logs go to the error stream so that dry-run output on stdout stays
// machine-readable. Each import run is tagged with a generated run ID,
// enabling correlation of all log entries for a single run.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Setup configures the global slog logger based on level and format, writing
// to w (normally stderr).
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" format when the error stream is collected by machines,
// "text" for human readability.
func Setup(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ForRun returns a logger tagged with a fresh run ID.
//
// Usage:
//
//	logger := logging.ForRun()
//	logger.Info("import starting", "type", recordType)
func ForRun() *slog.Logger {
	return slog.Default().With("run_id", uuid.NewString())
}
