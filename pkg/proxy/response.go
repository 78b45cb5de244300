package proxy

import (
	"encoding/json"
	"net/http"
	"time"

	"quillhq/scribe/pkg/providers"
)

// Result is the success envelope returned for a completed tool request.
type Result struct {
	Success   bool   `json:"success"`
	Result    string `json:"result"`
	Tool      string `json:"tool"`
	Timestamp string `json:"timestamp"`
	Usage     *Usage `json:"usage,omitempty"`
}

// Usage echoes the provider's token accounting when available.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorBody is the failure envelope. Every failure response, whatever
// the status code, uses this shape.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// WriteResult writes a 200 success envelope.
func WriteResult(w http.ResponseWriter, tool, result string, usage *providers.TokenUsage) {
	body := Result{
		Success:   true,
		Result:    result,
		Tool:      tool,
		Timestamp: timestamp(),
	}
	if usage != nil {
		body.Usage = &Usage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes a failure envelope with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
