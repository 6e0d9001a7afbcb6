package config

import "time"

// Config is the root configuration structure for the oops server. It
// contains the HTTP server settings, fault handling behavior, telemetry,
// and the diagnostics side channel.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// Faults contains configuration for the error interception pipeline.
	Faults FaultsConfig `yaml:"faults"`

	// Telemetry contains observability configuration for logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Diagnostics contains configuration for the failure signature side
	// channel.
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are abandoned.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers. It does not limit the body.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TLS contains TLS configuration for the server.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS configuration.
type TLSConfig struct {
	// Enabled controls whether TLS is enabled.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the TLS certificate file.
	// Required when Enabled is true.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the TLS private key file.
	// Required when Enabled is true.
	KeyFile string `yaml:"key_file"`
}

// FaultsConfig contains configuration for the error interception pipeline.
type FaultsConfig struct {
	// ExposeStack controls whether the error page includes the captured
	// stack trace. Leave this off outside development: stack traces leak
	// internals to clients.
	// Default: false
	ExposeStack bool `yaml:"expose_stack"`

	// WatchConfig enables live reloading of this section when the
	// configuration file changes, so ExposeStack can be flipped on a
	// running server.
	// Default: false
	WatchConfig bool `yaml:"watch_config"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the Prometheus endpoint is mounted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "oops"
	Namespace string `yaml:"namespace"`
}

// DiagnosticsConfig contains configuration for the failure signature side
// channel.
type DiagnosticsConfig struct {
	// Enabled controls whether faults are checked for known failure
	// signatures and recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// StorePath is the SQLite database file for recorded events.
	// Default: "data/diagnostics.db"
	StorePath string `yaml:"store_path"`

	// DigestSchedule is a cron expression for the periodic summary log
	// line. An empty value disables the digest.
	// Default: "0 * * * *" (hourly)
	DigestSchedule string `yaml:"digest_schedule"`
}
