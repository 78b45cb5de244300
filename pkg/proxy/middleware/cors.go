package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"quillhq/scribe/pkg/proxy"
)

// CORSConfig configures the cross-origin policy for browser clients.
type CORSConfig struct {
	// AllowedOrigins is the fixed allow-list. Matching is byte-exact
	// against the Origin header; there is no wildcard support.
	AllowedOrigins []string

	// AllowedMethods is advertised on preflight responses.
	AllowedMethods []string

	// AllowedHeaders is advertised on preflight responses.
	AllowedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// RejectUnknown refuses requests from origins outside the
	// allow-list with 403. When false, unknown origins simply receive
	// no permissive headers and the browser blocks the response.
	RejectUnknown bool
}

// CORS applies the cross-origin policy. Allowed origins are echoed
// back in Access-Control-Allow-Origin; preflight OPTIONS requests are
// answered directly and never reach the handlers.
//
// Vary: Origin is always set because the response headers depend on
// the request's Origin, and caching the echo for one origin would
// break every other.
func CORS(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := origin != "" && originAllowed(origin, config.AllowedOrigins)

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else if origin != "" && config.RejectUnknown {
				proxy.WriteError(w, http.StatusForbidden, "Origin not allowed")
				return
			}

			if r.Method == http.MethodOptions {
				if len(config.AllowedMethods) > 0 {
					w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				}
				if len(config.AllowedHeaders) > 0 {
					w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				}
				if config.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed reports whether origin is in the allow-list. The
// comparison is byte-exact: scheme, host, and port must all match.
func originAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
