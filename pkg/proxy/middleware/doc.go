// Package middleware provides the cross-cutting HTTP concerns wrapped
// around the tool handlers: panic recovery, request logging, request
// IDs, CORS, per-request timeouts, and daily usage quotas.
//
// The server composes them outermost-first as
// recovery, requestid, logging, cors, timeout, so a panic anywhere in
// the chain still produces a well-formed error envelope and every
// response is logged with its request ID.
package middleware
