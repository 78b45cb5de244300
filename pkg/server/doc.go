// Package server assembles the HTTP server: routes, middleware chain,
// and graceful shutdown. It wires the tool handler, health endpoint,
// and optional metrics endpoint behind recovery, request ID, logging,
// CORS, timeout, and quota middleware.
package server
