package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe - HTTP proxy for AI writing tools",
	Long: `Scribe is an HTTP proxy for AI writing tools.

It validates incoming tool requests, selects a per-tool prompt and
generation profile, calls the configured LLM provider (DeepSeek or
Gemini), and maps upstream responses and failures to a fixed JSON
contract:

  POST /ai/improve     - improve clarity and flow
  POST /ai/seo-write   - write an SEO-optimized article
  POST /ai/paraphrase  - rewrite with different wording
  POST /ai/humanize    - make AI text sound natural
  POST /ai/detect      - estimate whether text is AI-generated
  POST /ai/grammar     - fix grammar, spelling, and punctuation`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
