// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and APISCORE_ env vars.
// - Errors returned from this package wrap the sentinels in errors.go.
package config

import (
	"context"
	"time"
)

// Storage drivers understood by the repository package.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StorageDriver selects the document store: memory, sqlite or postgres.
	StorageDriver string `koanf:"storage_driver"`

	// StorageDSN is passed to the selected driver. Empty picks the driver default.
	StorageDSN string `koanf:"storage_dsn"`

	// RequestTimeoutMS bounds each HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// WorkerCount sizes the pool that ingests whole-form submissions.
	// Zero picks one worker per CPU.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the number of section jobs waiting for a worker.
	QueueSize int `koanf:"queue_size"`

	// AuthSecret enables HS256 bearer-token auth when non-empty.
	AuthSecret string `koanf:"auth_secret"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New creates a Config with defaults. The context is reserved for loaders
// that need it and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		StorageDriver:    DriverMemory,
		StorageDSN:       "",
		RequestTimeoutMS: 30_000,
		WorkerCount:      0,
		QueueSize:        1024,
		AuthSecret:       "",
		CORSOrigins:      []string{"http://localhost:3000"},
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}
