package providers

import "context"

// Provider is the interface all upstream adapters implement. It provides a
// unified abstraction over the chat-completion APIs the proxy can front.
//
// All methods accept a context.Context for cancellation and timeout control.
// Implementations must respect context cancellation and return immediately
// when the context is cancelled.
//
// Example usage:
//
//	provider, err := New(config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	req := &CompletionRequest{
//	    Messages: []Message{
//	        {Role: RoleSystem, Content: profile.SystemPrompt},
//	        {Role: RoleUser, Content: text},
//	    },
//	    MaxTokens:   profile.MaxTokens,
//	    Temperature: profile.Temperature,
//	}
//	resp, err := provider.Complete(ctx, req)
type Provider interface {
	// Complete sends a completion request to the provider and returns the
	// normalized response. The request is sent exactly once; transient
	// failures are returned as typed errors without retry.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies the provider is reachable. It returns nil if the
	// provider answers, or an error describing the issue.
	HealthCheck(ctx context.Context) error

	// Name returns the provider's identifier (e.g., "deepseek").
	Name() string

	// Close releases HTTP connections. After Close, the provider must not
	// be used.
	Close() error
}
