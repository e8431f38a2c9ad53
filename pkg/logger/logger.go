package logger

import (
	"log/slog"
	"strings"
)

// HandlerFactory builds a slog.Handler for the given minimum level.
type HandlerFactory func(level slog.Level) slog.Handler

func New(level string, handler HandlerFactory) *slog.Logger {
	h := handler(getSlogLevel(level))
	return slog.New(h)
}

// HandlerFor picks the handler factory matching a LOGFORMAT value.
func HandlerFor(format string) HandlerFactory {
	switch strings.ToLower(format) {
	case "console", "text":
		return NewConsoleHandler
	default: // "cloudrun"
		return NewCloudRunHandler
	}
}

// ---- Helpers ----
func getSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
