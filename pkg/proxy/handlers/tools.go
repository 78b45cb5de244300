package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/proxy"
	"quillhq/scribe/pkg/proxy/middleware"
	"quillhq/scribe/pkg/registry"
	"quillhq/scribe/pkg/telemetry/metrics"
)

// PathPrefix is the route prefix for tool invocations; the segment
// after it names the tool.
const PathPrefix = "/ai/"

// ToolHandler serves every tool route. The tool id from the path
// selects a profile from the registry; the profile and the validated
// input build the single upstream completion call.
type ToolHandler struct {
	registry *registry.Registry
	provider providers.Provider
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewToolHandler creates the handler. provider may be nil when no
// upstream credential is configured; every tool request then fails
// with a configuration error, while the rest of the server stays up.
// collector may be nil to disable metrics.
func NewToolHandler(reg *registry.Registry, provider providers.Provider, collector *metrics.Collector) *ToolHandler {
	return &ToolHandler{
		registry: reg,
		provider: provider,
		metrics:  collector,
		logger:   slog.Default().With("component", "proxy.tools"),
	}
}

// ServeHTTP implements http.Handler.
func (h *ToolHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	tool := strings.TrimPrefix(r.URL.Path, PathPrefix)

	status := h.handle(w, r, tool)

	if h.metrics != nil {
		h.metrics.RecordRequest(tool, strconv.Itoa(status), time.Since(startTime))
	}
}

// handle runs the request pipeline and returns the HTTP status written.
func (h *ToolHandler) handle(w http.ResponseWriter, r *http.Request, tool string) int {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		proxy.WriteError(w, http.StatusMethodNotAllowed, proxy.MsgMethodNotAllowed)
		return http.StatusMethodNotAllowed
	}

	profile, err := h.registry.Lookup(tool)
	if err != nil {
		return h.fail(ctx, w, tool, err)
	}

	req, err := proxy.ParseToolRequest(r)
	if err != nil {
		return h.fail(ctx, w, tool, err)
	}

	if h.provider == nil {
		h.logger.ErrorContext(ctx, "tool request without configured upstream credential",
			"tool", tool,
			"request_id", middleware.GetRequestID(ctx),
		)
		proxy.WriteError(w, http.StatusInternalServerError, proxy.MsgConfigurationError)
		return http.StatusInternalServerError
	}

	completion, err := h.provider.Complete(ctx, &providers.CompletionRequest{
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: profile.SystemPrompt},
			{Role: providers.RoleUser, Content: req.UserMessage()},
		},
		MaxTokens:   profile.MaxTokens,
		Temperature: profile.Temperature,
	})
	if err != nil {
		return h.fail(ctx, w, tool, err)
	}

	if h.metrics != nil && completion.Usage != nil {
		h.metrics.RecordTokens(tool, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	proxy.WriteResult(w, tool, completion.Content, completion.Usage)
	return http.StatusOK
}

// fail maps the error, records it, and writes the failure envelope.
func (h *ToolHandler) fail(ctx context.Context, w http.ResponseWriter, tool string, err error) int {
	status, message := proxy.MapError(err)

	if kind := proxy.ErrorKind(err); kind != "" {
		if h.metrics != nil {
			h.metrics.RecordUpstreamError(kind)
		}
		h.logger.ErrorContext(ctx, "upstream call failed",
			"tool", tool,
			"kind", kind,
			"status", status,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}

	proxy.WriteError(w, status, message)
	return status
}
