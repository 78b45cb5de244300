package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"quillhq/scribe/pkg/proxy"
)

// HealthHandler answers liveness probes. It reports healthy whenever
// the process is serving; upstream reachability is deliberately not
// probed here, since the proxy is useful to report upstream failures
// per-request.
type HealthHandler struct {
	// Version is reported in the response body.
	Version string
}

// NewHealthHandler creates a health handler reporting the given version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{Version: version}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		proxy.WriteError(w, http.StatusMethodNotAllowed, proxy.MsgMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.Version,
	})
}
