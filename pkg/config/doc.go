// Package config provides configuration loading, defaults, and validation
// for the proxy.
//
// Configuration is read from a YAML file, defaults are applied to unset
// fields, environment variables override file values (SCRIBE_* plus the
// provider key variables DEEPSEEK_API_KEY and GEMINI_API_KEY), and the final
// result is validated before use.
//
// A fsnotify-based watcher supports hot reload of the file for the settings
// that can change at runtime (CORS allow-list, tool profile overrides,
// usage limits).
package config
