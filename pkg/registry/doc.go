// Package registry provides the tool registry: an immutable mapping from a
// writing-tool identifier to the prompt and generation parameters used when
// building upstream completion requests.
//
// The registry is constructed once at startup and injected into the request
// handlers. It has no mutation operations and is safe for concurrent reads.
package registry
