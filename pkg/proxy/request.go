package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// MaxBodyBytes caps the inbound request body. Tool inputs are prose,
// not uploads.
const MaxBodyBytes = 1 << 20

// ToolRequest is the inbound payload for a tool invocation.
type ToolRequest struct {
	// Text is the content to process. Required.
	Text string `json:"text"`

	// Prompt is a deprecated alias for Text, honored only when Text is
	// absent.
	Prompt string `json:"prompt"`

	// Style is an optional free-form style hint.
	Style string `json:"style"`

	// Length is an optional free-form length hint.
	Length string `json:"length"`
}

// RequestError is a client-fixable validation failure carrying the
// status and message to return.
type RequestError struct {
	StatusCode int
	Message    string
}

// Error returns the client-facing message.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// ParseToolRequest decodes and validates the JSON body of a tool
// invocation. It returns a *RequestError for malformed JSON and for
// missing or whitespace-only text.
func ParseToolRequest(r *http.Request) (*ToolRequest, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)

	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &RequestError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid JSON in request body",
		}
	}

	if strings.TrimSpace(req.Input()) == "" {
		return nil, &RequestError{
			StatusCode: http.StatusBadRequest,
			Message:    "Text input is required and cannot be empty",
		}
	}

	return &req, nil
}

// Input returns the text to process, honoring the prompt alias when
// the canonical field is absent.
func (req *ToolRequest) Input() string {
	if strings.TrimSpace(req.Text) != "" {
		return req.Text
	}
	return req.Prompt
}

// UserMessage builds the user-role message content for the upstream
// call: the trimmed input, with any style and length hints appended as
// explicit instructions.
func (req *ToolRequest) UserMessage() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(req.Input()))

	if style := strings.TrimSpace(req.Style); style != "" {
		sb.WriteString("\n\nPreferred style: ")
		sb.WriteString(style)
	}
	if length := strings.TrimSpace(req.Length); length != "" {
		sb.WriteString("\n\nPreferred length: ")
		sb.WriteString(length)
	}

	return sb.String()
}
