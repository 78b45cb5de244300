package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// SCRIBE_SECTION_FIELD (e.g., SCRIBE_PROXY_LISTEN_ADDRESS); the provider key
// variables DEEPSEEK_API_KEY and GEMINI_API_KEY are honored as well.
// Environment variables always take precedence over file-based configuration.
//
// If the file does not exist, the default configuration is used as the base
// so a deployment can run on environment variables alone.
//
// The loading sequence is:
//  1. Load YAML from file (or start from defaults if absent)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	if val := os.Getenv("SCRIBE_PROXY_LISTEN_ADDRESS"); val != "" {
		cfg.Proxy.ListenAddress = val
	}
	if val := os.Getenv("SCRIBE_PROXY_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.ReadTimeout = d
		}
	}
	if val := os.Getenv("SCRIBE_PROXY_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.WriteTimeout = d
		}
	}
	if val := os.Getenv("SCRIBE_PROXY_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Proxy.RequestTimeout = d
		}
	}

	// Upstream overrides
	if val := os.Getenv("SCRIBE_UPSTREAM_PROVIDER"); val != "" {
		cfg.Upstream.Provider = val
	}
	if val := os.Getenv("SCRIBE_UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("SCRIBE_UPSTREAM_MODEL"); val != "" {
		cfg.Upstream.Model = val
	}
	if val := os.Getenv("SCRIBE_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	applyAPIKeyOverrides(cfg)

	// Limits overrides
	if val := os.Getenv("SCRIBE_LIMITS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Limits.Enabled = b
		}
	}
	if val := os.Getenv("SCRIBE_LIMITS_BACKEND"); val != "" {
		cfg.Limits.Backend = val
	}
	if val := os.Getenv("SCRIBE_LIMITS_SQLITE_PATH"); val != "" {
		cfg.Limits.SQLitePath = val
	}

	// Telemetry overrides
	if val := os.Getenv("SCRIBE_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SCRIBE_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SCRIBE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}

// applyAPIKeyOverrides resolves the upstream credential. Precedence:
// SCRIBE_UPSTREAM_API_KEY, then the provider's conventional variable, then
// the config file value.
func applyAPIKeyOverrides(cfg *Config) {
	if val := os.Getenv("SCRIBE_UPSTREAM_API_KEY"); val != "" {
		cfg.Upstream.APIKey = val
		return
	}

	switch cfg.Upstream.Provider {
	case "deepseek":
		if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
			cfg.Upstream.APIKey = val
		}
	case "gemini":
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Upstream.APIKey = val
		}
	}
}
