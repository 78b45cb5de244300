package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Proxy contains HTTP server and CORS settings.
	Proxy ProxyConfig `yaml:"proxy"`

	// Upstream selects and configures the LLM provider.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Tools contains optional per-tool profile overrides.
	Tools map[string]ToolOverride `yaml:"tools"`

	// Limits configures server-side daily usage quotas.
	Limits LimitsConfig `yaml:"limits"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains HTTP server settings.
type ProxyConfig struct {
	// ListenAddress is the address the server binds to.
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out the response.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// kept-alive connection.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// RequestTimeout bounds the whole request pipeline, including the
	// upstream call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CORS contains the cross-origin policy.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains the cross-origin policy for browser clients.
type CORSConfig struct {
	// AllowedOrigins is the fixed allow-list of origins. Matching is
	// byte-exact; there is no wildcard and no implicit normalization.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of methods advertised on preflight.
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of headers advertised on preflight.
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int `yaml:"max_age"`

	// RejectUnknown controls whether requests from origins outside the
	// allow-list are refused with 403 instead of merely receiving no
	// permissive headers.
	RejectUnknown bool `yaml:"reject_unknown"`
}

// UpstreamConfig selects and configures the LLM provider.
type UpstreamConfig struct {
	// Provider is the upstream to use: "deepseek" or "gemini".
	Provider string `yaml:"provider"`

	// BaseURL overrides the provider's default API base URL.
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer credential. Usually supplied via environment
	// variable rather than the config file.
	APIKey string `yaml:"api_key"`

	// Model overrides the provider's default model.
	Model string `yaml:"model"`

	// Timeout bounds each upstream call.
	Timeout time.Duration `yaml:"timeout"`
}

// ToolOverride adjusts a built-in tool profile. Unset fields keep the
// built-in value.
type ToolOverride struct {
	// SystemPrompt replaces the built-in system prompt.
	SystemPrompt string `yaml:"system_prompt"`

	// MaxTokens replaces the completion token budget.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature replaces the sampling temperature.
	Temperature *float64 `yaml:"temperature"`
}

// LimitsConfig configures server-side daily usage quotas. Quotas are
// disabled unless explicitly enabled; the proxy never substitutes quota
// decisions for upstream results.
type LimitsConfig struct {
	// Enabled turns quota enforcement on.
	Enabled bool `yaml:"enabled"`

	// Backend selects the counter store: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// Daily maps tool id to the allowed uses per client per day.
	// Tools absent from the map are unlimited.
	Daily map[string]int `yaml:"daily"`

	// ResetSchedule is the cron expression for the daily counter reset.
	ResetSchedule string `yaml:"reset_schedule"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Enabled turns the /metrics endpoint on.
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets overrides the latency histogram buckets.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
