package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"quillhq/scribe/pkg/proxy"
)

// Recovery converts handler panics into a 500 error envelope. The
// panic and stack trace are logged; the client sees only the generic
// message. A request must always end in exactly one response, even
// when something below blows up.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				proxy.WriteError(w, http.StatusInternalServerError, proxy.MsgInternalError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
