// Scribe is an HTTP proxy for AI writing tools.
//
// It exposes a small set of text-transformation endpoints (improve,
// seo-write, paraphrase, humanize, detect, grammar), forwards each
// request to a configured LLM provider (DeepSeek or Gemini) with a
// per-tool prompt and generation profile, and normalizes upstream
// responses and failures into a fixed JSON contract for browser
// front-ends.
//
// Usage:
//
//	# Start the proxy with default configuration
//	scribe serve
//
//	# Start with a custom configuration file
//	scribe serve --config /etc/scribe/config.yaml
//
//	# Validate a configuration file
//	scribe validate --config /etc/scribe/config.yaml
//
//	# List the available tools and their profiles
//	scribe tools
//
//	# Show version information
//	scribe version
package main

func main() {
	Execute()
}
