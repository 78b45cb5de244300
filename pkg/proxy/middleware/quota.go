package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"quillhq/scribe/pkg/limits"
	"quillhq/scribe/pkg/proxy"
)

// ClientIDHeader identifies the caller for quota accounting. Requests
// without it fall back to the remote address.
const ClientIDHeader = "X-User-ID"

// Quota enforces daily per-client usage limits on tool routes. Each
// admitted request consumes one use of the tool named by the path; a
// client over its allowance receives 429.
//
// A use is consumed before the upstream call, so upstream failures
// still count. That is intentional: the quota protects the upstream
// budget, and a failed call spends it too.
func Quota(tracker *limits.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tracker == nil || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			tool := strings.TrimPrefix(r.URL.Path, "/ai/")
			client := clientID(r)

			if err := tracker.Consume(r.Context(), client, tool); err != nil {
				var exceeded *limits.ExceededError
				if errors.As(err, &exceeded) {
					proxy.WriteError(w, http.StatusTooManyRequests, exceeded.Error())
					return
				}
				// Anything else from the tracker is already logged
				// there; admit the request.
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientID resolves the quota identity: the X-User-ID header when
// present, else the remote host without port.
func clientID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ClientIDHeader)); id != "" {
		return id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
