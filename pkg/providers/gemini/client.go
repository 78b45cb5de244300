// Package gemini implements the Provider adapter for Google's Gemini
// generateContent API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quillhq/scribe/pkg/providers"
)

// DefaultBaseURL is the Gemini API base URL.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is the model requested when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Client is the Gemini provider adapter.
type Client struct {
	*providers.HTTPProvider
}

// New creates a Gemini provider from the given configuration.
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

// Gemini wire types. Only the fields the proxy uses are modeled.

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Complete sends a generateContent request and normalizes the response.
// System messages become the systemInstruction; user and assistant messages
// map to "user" and "model" content entries.
func (c *Client) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	cfg := c.Config()

	model := req.Model
	if model == "" {
		model = cfg.Model
	}

	wireReq := &generateRequest{
		GenerationConfig: &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case providers.RoleSystem:
			wireReq.SystemInstruction = &content{
				Parts: []part{{Text: msg.Content}},
			}
		case providers.RoleAssistant:
			wireReq.Contents = append(wireReq.Contents, content{
				Role:  "model",
				Parts: []part{{Text: msg.Content}},
			})
		default:
			wireReq.Contents = append(wireReq.Contents, content{
				Role:  "user",
				Parts: []part{{Text: msg.Content}},
			})
		}
	}

	var wireResp generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(cfg.BaseURL, "/"), model)
	headers := map[string]string{
		"x-goog-api-key": cfg.APIKey,
	}

	if err := c.DoJSONRequest(ctx, http.MethodPost, url, wireReq, &wireResp, headers); err != nil {
		return nil, err
	}

	if len(wireResp.Candidates) == 0 {
		return nil, &providers.EmptyResponseError{Provider: cfg.Name}
	}

	var sb strings.Builder
	for _, p := range wireResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, &providers.EmptyResponseError{Provider: cfg.Name}
	}

	resp := &providers.CompletionResponse{
		Content: text,
		Model:   model,
	}
	if wireResp.UsageMetadata != nil {
		resp.Usage = &providers.TokenUsage{
			PromptTokens:     wireResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: wireResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      wireResp.UsageMetadata.TotalTokenCount,
		}
	}
	return resp, nil
}

// HealthCheck verifies the API is reachable by fetching model metadata.
func (c *Client) HealthCheck(ctx context.Context) error {
	cfg := c.Config()
	url := fmt.Sprintf("%s/models/%s", strings.TrimRight(cfg.BaseURL, "/"), cfg.Model)
	headers := map[string]string{
		"x-goog-api-key": cfg.APIKey,
	}

	resp, err := c.DoRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	resp.Body.Close()
	return nil
}
