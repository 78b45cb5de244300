// Package handlers contains the HTTP handlers for the tool routes and
// the health endpoint. The tool handler is fully data-driven: one
// handler serves every tool, with the per-tool prompt and generation
// parameters resolved from the registry by path segment.
package handlers
