// Package providerfactory creates upstream provider adapters from
// configuration. The deployment selects exactly one provider; the factory
// hides the concrete adapter type from the rest of the proxy.
package providerfactory

import (
	"fmt"
	"log/slog"

	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/providers/deepseek"
	"quillhq/scribe/pkg/providers/gemini"
)

// New creates a provider instance for the configured upstream.
//
// Supported provider names:
//   - "deepseek": DeepSeek chat completions (OpenAI-compatible)
//   - "gemini": Google Gemini generateContent
//
// Example:
//
//	config := providers.ProviderConfig{
//	    Name:   "deepseek",
//	    APIKey: os.Getenv("DEEPSEEK_API_KEY"),
//	}
//	provider, err := providerfactory.New(config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
func New(config providers.ProviderConfig) (providers.Provider, error) {
	slog.Debug("creating provider",
		"name", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	var provider providers.Provider
	var err error

	switch config.Name {
	case "deepseek":
		provider, err = deepseek.New(config)

	case "gemini":
		provider, err = gemini.New(config)

	default:
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "provider",
			Message:  fmt.Sprintf("unsupported provider: %q (supported: deepseek, gemini)", config.Name),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", config.Name, err)
	}

	slog.Info("provider created",
		"name", config.Name,
		"model", config.Model,
	)

	return provider, nil
}
