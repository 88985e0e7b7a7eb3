// Package logger builds slog loggers from configuration. Destination
// resolution (log files, stderr) is I/O and lives in internal/iologger;
// this package only maps config values onto handlers.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
)

// New creates a slog.Logger writing to w with the level and format
// from the config. Invalid values default to Info level and JSON
// format.
func New(w io.Writer, cfg *config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "": // Default to info if empty
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
