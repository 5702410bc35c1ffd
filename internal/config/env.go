package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from SPECREBIN_* variables.
type Env struct {
	Workers   int    `env:"SPECREBIN_WORKERS" envDefault:"0"`
	LogLevel  string `env:"SPECREBIN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SPECREBIN_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses an [Env] from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.Workers < 0 {
		return Env{}, fmt.Errorf("parse env: SPECREBIN_WORKERS must be >= 0, got %d", e.Workers)
	}
	return e, nil
}

// NewLogger builds a slog logger writing to w. format is "text" or "json";
// level is any name accepted by [slog.Level.UnmarshalText].
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format: unknown %q", format)
	}
}
