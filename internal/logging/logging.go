// Package logging builds the slog loggers used across symdoc.
//
// Level and format come from the logging section of the config and can be
// overridden with SYMDOC_LOG_LEVEL and SYMDOC_LOG_FORMAT. Logs go to stderr
// so that commands printing documents to stdout stay pipeable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLevel  = "SYMDOC_LOG_LEVEL"
	EnvFormat = "SYMDOC_LOG_FORMAT"
)

// Config holds logging configuration
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// LoadConfig builds a Config from configured values, then applies any
// environment overrides.
func LoadConfig(level, format string) Config {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	if env := os.Getenv(EnvFormat); env != "" {
		format = env
	}
	return Config{
		Level:  ParseLevel(level),
		Format: strings.ToLower(format),
		Output: os.Stderr,
	}
}

func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
