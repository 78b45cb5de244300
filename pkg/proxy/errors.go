package proxy

import (
	"errors"
	"net/http"

	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/registry"
)

// Client-facing error messages. These are the complete vocabulary of
// failure strings; raw upstream error text is never forwarded.
const (
	MsgEndpointNotFound   = "Endpoint not found"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgConfigurationError = "AI service configuration error"
	MsgAuthFailed         = "AI service authentication failed"
	MsgRateLimited        = "AI service rate limit exceeded. Please try again in a moment."
	MsgUnavailable        = "AI service temporarily unavailable"
	MsgInvalidResponse    = "Invalid response from AI service"
	MsgEmptyResponse      = "AI service returned empty response"
	MsgInternalError      = "Internal server error occurred"
)

// MapError converts an error from the request pipeline to the HTTP
// status and message to return.
//
// The mapping deliberately distinguishes operator-facing from
// client-facing failures: an upstream 401 means the proxy's own
// credential is bad, so the client sees 500, not 401. An upstream 429
// passes through as 429 since the client can back off and retry. Any
// other upstream failure is a 503.
func MapError(err error) (int, string) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, reqErr.Message
	}

	var notFound *registry.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, MsgEndpointNotFound
	}

	var configErr *providers.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusInternalServerError, MsgConfigurationError
	}

	var authErr *providers.AuthError
	if errors.As(err, &authErr) {
		return http.StatusInternalServerError, MsgAuthFailed
	}

	var rateErr *providers.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests, MsgRateLimited
	}

	var emptyErr *providers.EmptyResponseError
	if errors.As(err, &emptyErr) {
		return http.StatusInternalServerError, MsgEmptyResponse
	}

	var parseErr *providers.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusInternalServerError, MsgInvalidResponse
	}

	var timeoutErr *providers.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusServiceUnavailable, MsgUnavailable
	}

	var providerErr *providers.ProviderError
	if errors.As(err, &providerErr) {
		return http.StatusServiceUnavailable, MsgUnavailable
	}

	return http.StatusInternalServerError, MsgInternalError
}

// ErrorKind classifies an upstream failure for metrics labels. Returns
// an empty string for errors that are not upstream-related.
func ErrorKind(err error) string {
	switch {
	case errors.As(err, new(*providers.AuthError)):
		return "auth"
	case errors.As(err, new(*providers.RateLimitError)):
		return "rate_limit"
	case errors.As(err, new(*providers.TimeoutError)):
		return "timeout"
	case errors.As(err, new(*providers.EmptyResponseError)):
		return "empty"
	case errors.As(err, new(*providers.ParseError)):
		return "parse"
	case errors.As(err, new(*providers.ConfigError)):
		return "config"
	case errors.As(err, new(*providers.ProviderError)):
		return "upstream"
	default:
		return ""
	}
}
