// Package providers defines the upstream LLM provider abstraction and its
// adapters. The proxy treats the upstream as an opaque text-completion
// service: one request in, one normalized response or typed error out.
//
// Adapters transform the provider-agnostic CompletionRequest to the wire
// format of their API (DeepSeek's OpenAI-compatible chat completions, Gemini's
// generateContent) and normalize the reply. Upstream failures surface as the
// typed errors in errors.go so the proxy boundary can map them to a fixed set
// of HTTP statuses.
//
// Requests are sent exactly once; there is no automatic retry. A failed call
// is reported to the client, which may retry the idempotent endpoint itself.
package providers
