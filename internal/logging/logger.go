// Package logging wires zerolog loggers through context.Context.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// NoColor disables ANSI colors in console output (log files).
	NoColor bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps trace, debug, info, warn and error to zerolog levels.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// New creates a logger writing to stderr
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	output := w
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: cfg.TimeFormat,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromEnv creates a logger based on environment variables
// TEXTEDIT_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// TEXTEDIT_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return New(ApplyEnv(DefaultConfig()))
}

// ApplyEnv overrides cfg with TEXTEDIT_LOG_LEVEL and TEXTEDIT_LOG_FORMAT.
// Unknown values are ignored.
func ApplyEnv(cfg Config) Config {
	if raw := os.Getenv("TEXTEDIT_LOG_LEVEL"); raw != "" {
		if level, err := ParseLevel(raw); err == nil {
			cfg.Level = level
		}
	}

	if format := os.Getenv("TEXTEDIT_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}
	return cfg
}

// NewFromConfigValues creates a console or json logger from raw config
// strings. Unknown levels fall back to info.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	if lvl, err := ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if format == "json" {
		cfg.Format = format
	}
	return New(cfg)
}
