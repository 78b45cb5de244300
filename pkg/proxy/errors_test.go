package proxy

import (
	"errors"
	"fmt"
	"testing"

	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/registry"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation error passes through",
			err:         &RequestError{StatusCode: 400, Message: "Text input is required and cannot be empty"},
			wantStatus:  400,
			wantMessage: "Text input is required and cannot be empty",
		},
		{
			name:        "unknown tool",
			err:         &registry.NotFoundError{ID: "translate"},
			wantStatus:  404,
			wantMessage: MsgEndpointNotFound,
		},
		{
			name:        "missing credential",
			err:         &providers.ConfigError{Provider: "deepseek", Field: "api_key", Message: "required"},
			wantStatus:  500,
			wantMessage: MsgConfigurationError,
		},
		{
			name:        "upstream auth failure is operator-facing",
			err:         &providers.AuthError{Provider: "deepseek", Message: "bad key"},
			wantStatus:  500,
			wantMessage: MsgAuthFailed,
		},
		{
			name:        "upstream rate limit passes through",
			err:         &providers.RateLimitError{Provider: "deepseek"},
			wantStatus:  429,
			wantMessage: MsgRateLimited,
		},
		{
			name:        "empty completion",
			err:         &providers.EmptyResponseError{Provider: "deepseek"},
			wantStatus:  500,
			wantMessage: MsgEmptyResponse,
		},
		{
			name:        "malformed upstream body",
			err:         &providers.ParseError{Provider: "deepseek", Cause: errors.New("bad json")},
			wantStatus:  500,
			wantMessage: MsgInvalidResponse,
		},
		{
			name:        "upstream timeout",
			err:         &providers.TimeoutError{Provider: "deepseek"},
			wantStatus:  503,
			wantMessage: MsgUnavailable,
		},
		{
			name:        "upstream server error",
			err:         &providers.ProviderError{Provider: "deepseek", StatusCode: 500, Message: "boom"},
			wantStatus:  503,
			wantMessage: MsgUnavailable,
		},
		{
			name:        "wrapped provider error still classified",
			err:         fmt.Errorf("completing request: %w", &providers.AuthError{Provider: "gemini"}),
			wantStatus:  500,
			wantMessage: MsgAuthFailed,
		},
		{
			name:        "unknown error",
			err:         errors.New("something unexpected"),
			wantStatus:  500,
			wantMessage: MsgInternalError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := MapError(tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if message != tc.wantMessage {
				t.Errorf("message = %q, want %q", message, tc.wantMessage)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&providers.AuthError{}, "auth"},
		{&providers.RateLimitError{}, "rate_limit"},
		{&providers.TimeoutError{}, "timeout"},
		{&providers.EmptyResponseError{}, "empty"},
		{&providers.ParseError{}, "parse"},
		{&providers.ConfigError{}, "config"},
		{&providers.ProviderError{StatusCode: 502}, "upstream"},
		{&RequestError{StatusCode: 400}, ""},
		{errors.New("other"), ""},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%T) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
