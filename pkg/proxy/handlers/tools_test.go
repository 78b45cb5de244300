package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/proxy"
	"quillhq/scribe/pkg/registry"
)

// stubProvider returns a canned completion or error and records the
// last request it received.
type stubProvider struct {
	response *providers.CompletionResponse
	err      error
	lastReq  *providers.CompletionRequest
}

func (s *stubProvider) Complete(_ context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubProvider) HealthCheck(context.Context) error { return nil }
func (s *stubProvider) Name() string                      { return "stub" }
func (s *stubProvider) Close() error                      { return nil }

func invoke(t *testing.T, h *ToolHandler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) proxy.ErrorBody {
	t.Helper()
	var body proxy.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return body
}

func TestToolHandlerSuccess(t *testing.T) {
	provider := &stubProvider{
		response: &providers.CompletionResponse{
			Content: "He went to school yesterday.",
			Usage:   &providers.TokenUsage{PromptTokens: 15, CompletionTokens: 9, TotalTokens: 24},
		},
	}
	h := NewToolHandler(registry.MustNew(nil), provider, nil)

	rec := invoke(t, h, "POST", "/ai/grammar", `{"text":"He go to school yesterday."}`)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body proxy.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !body.Success || body.Tool != "grammar" {
		t.Errorf("body = %+v", body)
	}
	if body.Result != "He went to school yesterday." {
		t.Errorf("result = %q", body.Result)
	}
	if body.Usage == nil || body.Usage.TotalTokens != 24 {
		t.Errorf("usage = %+v", body.Usage)
	}
}

func TestToolHandlerBuildsUpstreamRequestFromProfile(t *testing.T) {
	provider := &stubProvider{response: &providers.CompletionResponse{Content: "ok"}}
	h := NewToolHandler(registry.MustNew(nil), provider, nil)

	invoke(t, h, "POST", "/ai/seo-write", `{"text":"best running shoes"}`)

	req := provider.lastReq
	if req == nil {
		t.Fatal("provider was not called")
	}

	profile, err := registry.MustNew(nil).Lookup("seo-write")
	if err != nil {
		t.Fatal(err)
	}
	if req.MaxTokens != profile.MaxTokens {
		t.Errorf("max tokens = %d, want %d", req.MaxTokens, profile.MaxTokens)
	}
	if req.Temperature != profile.Temperature {
		t.Errorf("temperature = %v, want %v", req.Temperature, profile.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(req.Messages))
	}
	if req.Messages[0].Role != providers.RoleSystem || req.Messages[0].Content != profile.SystemPrompt {
		t.Errorf("system message = %+v", req.Messages[0])
	}
	if req.Messages[1].Role != providers.RoleUser || req.Messages[1].Content != "best running shoes" {
		t.Errorf("user message = %+v", req.Messages[1])
	}
}

func TestToolHandlerUnknownTool(t *testing.T) {
	h := NewToolHandler(registry.MustNew(nil), &stubProvider{}, nil)

	rec := invoke(t, h, "POST", "/ai/translate", `{"text":"hello"}`)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != proxy.MsgEndpointNotFound {
		t.Errorf("error = %q", body.Error)
	}
}

func TestToolHandlerMethodNotAllowed(t *testing.T) {
	h := NewToolHandler(registry.MustNew(nil), &stubProvider{}, nil)

	rec := invoke(t, h, "GET", "/ai/grammar", "")

	if rec.Code != 405 {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestToolHandlerEmptyText(t *testing.T) {
	provider := &stubProvider{}
	h := NewToolHandler(registry.MustNew(nil), provider, nil)

	rec := invoke(t, h, "POST", "/ai/improve", `{}`)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "Text input is required and cannot be empty" {
		t.Errorf("error = %q", body.Error)
	}
	if provider.lastReq != nil {
		t.Error("upstream must not be called for invalid input")
	}
}

func TestToolHandlerNoProvider(t *testing.T) {
	h := NewToolHandler(registry.MustNew(nil), nil, nil)

	rec := invoke(t, h, "POST", "/ai/grammar", `{"text":"hello"}`)

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != proxy.MsgConfigurationError {
		t.Errorf("error = %q", body.Error)
	}
}

func TestToolHandlerUpstreamErrors(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "auth failure",
			err:         &providers.AuthError{Provider: "deepseek", Message: "invalid key"},
			wantStatus:  500,
			wantMessage: proxy.MsgAuthFailed,
		},
		{
			name:        "rate limited",
			err:         &providers.RateLimitError{Provider: "deepseek"},
			wantStatus:  429,
			wantMessage: proxy.MsgRateLimited,
		},
		{
			name:        "server error",
			err:         &providers.ProviderError{Provider: "deepseek", StatusCode: 500, Message: "boom"},
			wantStatus:  503,
			wantMessage: proxy.MsgUnavailable,
		},
		{
			name:        "empty completion",
			err:         &providers.EmptyResponseError{Provider: "deepseek"},
			wantStatus:  500,
			wantMessage: proxy.MsgEmptyResponse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewToolHandler(registry.MustNew(nil), &stubProvider{err: tc.err}, nil)

			rec := invoke(t, h, "POST", "/ai/paraphrase", `{"text":"rewrite this"}`)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if body := decodeError(t, rec); body.Error != tc.wantMessage {
				t.Errorf("error = %q, want %q", body.Error, tc.wantMessage)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("1.2.3")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["version"] != "1.2.3" {
		t.Errorf("version = %v", body["version"])
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Error("timestamp missing")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/health", nil))
	if rec.Code != 405 {
		t.Errorf("POST /health status = %d, want 405", rec.Code)
	}
}
