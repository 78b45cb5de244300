package providers

import "time"

// Message represents a single role-tagged message in a completion request.
// It is provider-agnostic and is transformed to provider-specific formats.
type Message struct {
	// Role identifies the message sender (system, user, assistant).
	Role string `json:"role"`

	// Content is the message text content.
	Content string `json:"content"`
}

// TokenUsage tracks token consumption reported by the upstream provider.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used (prompt + completion).
	TotalTokens int `json:"total_tokens"`
}

// CompletionRequest represents a provider-agnostic completion request built
// from a tool profile and the validated client text. It is sent once per
// inbound request.
type CompletionRequest struct {
	// Model is the model identifier (e.g., "deepseek-chat").
	Model string `json:"model"`

	// Messages is the role-tagged message sequence (system, then user).
	Messages []Message `json:"messages"`

	// Temperature controls sampling randomness (0.0 to 1.0).
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse represents a normalized completion response.
// Adapters guarantee Content is non-empty after trimming; an upstream reply
// without a usable choice is reported as an *EmptyResponseError instead.
type CompletionResponse struct {
	// Content is the generated text, trimmed of surrounding whitespace.
	Content string `json:"content"`

	// Model is the model that generated the response, when reported.
	Model string `json:"model,omitempty"`

	// Usage contains token consumption information, when reported.
	Usage *TokenUsage `json:"usage,omitempty"`
}

// ProviderConfig contains configuration for a single provider adapter.
type ProviderConfig struct {
	// Name is the provider identifier ("deepseek", "gemini").
	Name string

	// BaseURL is the API endpoint base URL.
	BaseURL string

	// APIKey is the bearer credential read from process configuration.
	APIKey string

	// Model is the model identifier to request.
	Model string

	// Timeout bounds each upstream call.
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool.
	IdleConnTimeout time.Duration
}

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
