package middleware

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// requestIDKey stores the unique request ID.
	requestIDKey contextKey = "request_id"

	// startTimeKey stores the request start time for latency calculation.
	startTimeKey contextKey = "start_time"
)

// GetRequestID extracts the request ID from the context. Returns an
// empty string if not set.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetStartTime extracts the request start time from the context.
// Returns the zero time if not set.
func GetStartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey).(time.Time); ok {
		return t
	}
	return time.Time{}
}
