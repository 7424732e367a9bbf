// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and YODA_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration. It is loaded once at start-up and
// treated as read-only afterwards.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SwapiBaseURL is the root of the character search API, without the
	// /api/people path.
	SwapiBaseURL string `koanf:"swapi_base_url"`

	// SwapiTimeoutMS bounds every SWAPI round trip, in milliseconds.
	SwapiTimeoutMS int `koanf:"swapi_timeout_ms"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsRefreshMS is how often system gauges are refreshed.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8000",
		SwapiBaseURL:   "https://swapi.dev",
		SwapiTimeoutMS: 2000,

		MetricsEnabled:   true,
		MetricsNamespace: "yoda",
		MetricsRefreshMS: 10000,
	}
}

// SwapiTimeout returns SwapiTimeoutMS as a duration.
func (c *Config) SwapiTimeout() time.Duration {
	return time.Duration(c.SwapiTimeoutMS) * time.Millisecond
}

// MetricsRefresh returns MetricsRefreshMS as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshMS) * time.Millisecond
}
