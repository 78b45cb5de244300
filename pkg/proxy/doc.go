// Package proxy implements the wire contract between the writing-tools
// front-end and the upstream LLM provider.
//
// The package owns three things:
//
//   - Request parsing and validation (ParseToolRequest): the inbound
//     JSON body with its required text field and the deprecated prompt
//     alias.
//
//   - Response envelopes (WriteResult, WriteError): every response,
//     success or failure, carries success, timestamp, and either result
//     or error.
//
//   - Error mapping (MapError): provider and validation failures are
//     converted to the fixed client-facing taxonomy. Upstream
//     authentication failures surface as 500 because the proxy's own
//     credential is at fault, rate limits pass through as 429, and any
//     other upstream failure becomes 503. Raw upstream error bodies are
//     never forwarded to the client.
//
// HTTP handlers live in the handlers subpackage and cross-cutting
// concerns (request IDs, CORS, logging, recovery, timeouts, quotas) in
// the middleware subpackage.
package proxy
