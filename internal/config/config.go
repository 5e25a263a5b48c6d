// Package config provides centralized configuration management for the
// importer. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all environment-driven configuration. Per-run options (record
// type, wait interval, dry-run, column mapping) come from command-line flags
// instead.
type Config struct {
	API     APIConfig
	Logging LoggingConfig
}

// APIConfig holds target API connection settings.
type APIConfig struct {
	// URL is the connection URL for the target API: scheme, host,
	// optional base path, and credentials (required)
	URL string `env:"API_URL" required:"true"`

	// Timeout is the per-request timeout (default: 30s)
	Timeout time.Duration `env:"API_TIMEOUT" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
