package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the service logger. Format is "json" or "text"; when empty,
// production gets JSON and everything else gets text.
func New(service, env, level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
		if env == "production" || env == "prod" {
			format = "json"
		}
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("env", env),
	)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
