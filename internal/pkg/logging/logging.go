// Package logging configures the structured logger used across the service.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger from LOG_LEVEL and LOG_FORMAT
// environment variables and returns it. Defaults to INFO level text output.
func Setup() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func level() slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
