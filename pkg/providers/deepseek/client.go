// Package deepseek implements the Provider adapter for the DeepSeek
// chat-completion API, which follows the OpenAI wire format.
package deepseek

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quillhq/scribe/pkg/providers"
)

// DefaultBaseURL is the DeepSeek API base URL.
const DefaultBaseURL = "https://api.deepseek.com/v1"

// DefaultModel is the chat model requested when none is configured.
const DefaultModel = "deepseek-chat"

// Client is the DeepSeek provider adapter.
type Client struct {
	*providers.HTTPProvider
}

// New creates a DeepSeek provider from the given configuration.
// The API key must be present; the proxy fails fast on a missing credential
// rather than attempting an unauthenticated call.
func New(config providers.ProviderConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required",
		}
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		HTTPProvider: providers.NewHTTPProvider(config),
	}, nil
}

// chatRequest is the DeepSeek (OpenAI-compatible) chat completion request.
type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []providers.Message `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature"`
	Stream      bool                `json:"stream"`
}

// chatResponse is the DeepSeek chat completion response.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *providers.TokenUsage `json:"usage"`
}

// Complete sends a chat completion request and normalizes the response.
func (c *Client) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	cfg := c.Config()

	model := req.Model
	if model == "" {
		model = cfg.Model
	}

	wireReq := &chatRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	}

	var wireResp chatResponse
	url := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
	}

	if err := c.DoJSONRequest(ctx, http.MethodPost, url, wireReq, &wireResp, headers); err != nil {
		return nil, err
	}

	if len(wireResp.Choices) == 0 {
		return nil, &providers.EmptyResponseError{Provider: cfg.Name}
	}

	content := strings.TrimSpace(wireResp.Choices[0].Message.Content)
	if content == "" {
		return nil, &providers.EmptyResponseError{Provider: cfg.Name}
	}

	return &providers.CompletionResponse{
		Content: content,
		Model:   wireResp.Model,
		Usage:   wireResp.Usage,
	}, nil
}

// HealthCheck verifies the API is reachable by listing models.
func (c *Client) HealthCheck(ctx context.Context) error {
	cfg := c.Config()
	url := strings.TrimRight(cfg.BaseURL, "/") + "/models"
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
	}

	resp, err := c.DoRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	resp.Body.Close()
	return nil
}
