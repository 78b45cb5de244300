package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// Note: the upstream API key is deliberately not required here. A missing
// credential is reported per-request as a configuration error so the server
// can start (and serve /health) before the secret is provisioned.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateUpstream(&cfg.Upstream)...)
	errs = append(errs, validateTools(cfg.Tools)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: fmt.Sprintf("invalid listen address %q", cfg.ListenAddress),
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "proxy.read_timeout", Message: "must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "proxy.write_timeout", Message: "must not be negative"})
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, FieldError{Field: "proxy.request_timeout", Message: "must be positive"})
	}

	for i, origin := range cfg.CORS.AllowedOrigins {
		field := fmt.Sprintf("proxy.cors.allowed_origins[%d]", i)
		if origin != strings.TrimSpace(origin) {
			// Matching is byte-exact, so stray whitespace would silently
			// disable the origin. Reject it up front.
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("origin %q has leading or trailing whitespace", origin),
			})
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("origin %q is not a valid scheme://host origin", origin),
			})
		}
	}

	return errs
}

func validateUpstream(cfg *UpstreamConfig) []FieldError {
	var errs []FieldError

	switch cfg.Provider {
	case "deepseek", "gemini":
	default:
		errs = append(errs, FieldError{
			Field:   "upstream.provider",
			Message: fmt.Sprintf("unsupported provider %q (supported: deepseek, gemini)", cfg.Provider),
		})
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, FieldError{
				Field:   "upstream.base_url",
				Message: fmt.Sprintf("invalid base URL %q", cfg.BaseURL),
			})
		}
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{Field: "upstream.timeout", Message: "must be positive"})
	}

	return errs
}

func validateTools(tools map[string]ToolOverride) []FieldError {
	var errs []FieldError

	for id, ov := range tools {
		if ov.MaxTokens < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("tools.%s.max_tokens", id),
				Message: "must not be negative",
			})
		}
		if ov.Temperature != nil && (*ov.Temperature < 0 || *ov.Temperature > 1) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("tools.%s.temperature", id),
				Message: "must be in [0, 1]",
			})
		}
	}

	return errs
}

func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return nil
	}

	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, FieldError{Field: "limits.sqlite_path", Message: "required for sqlite backend"})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "limits.backend",
			Message: fmt.Sprintf("unsupported backend %q (supported: memory, sqlite)", cfg.Backend),
		})
	}

	for tool, n := range cfg.Daily {
		if n <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("limits.daily.%s", tool),
				Message: "must be positive",
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unsupported level %q (supported: debug, info, warn, error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unsupported format %q (supported: json, text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "must start with /",
		})
	}

	return errs
}
