package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quillhq/scribe/pkg/cli"
	"quillhq/scribe/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate the configuration file without starting the server.

All validation errors are reported together, so one run shows
everything that needs fixing.

Examples:
  scribe validate
  scribe validate --config /etc/scribe/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		var validationErr config.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Printf("configuration invalid (%d errors):\n", len(validationErr.Errors))
			for _, fieldErr := range validationErr.Errors {
				fmt.Printf("  - %s\n", fieldErr.Error())
			}
			return cli.NewCommandError("validate", errors.New("configuration invalid"))
		}
		return cli.NewConfigError("", err.Error())
	}

	fmt.Println("configuration valid")
	fmt.Printf("  listen address: %s\n", cfg.Proxy.ListenAddress)
	fmt.Printf("  upstream:       %s\n", cfg.Upstream.Provider)
	fmt.Printf("  quotas:         %v\n", cfg.Limits.Enabled)
	fmt.Printf("  metrics:        %v\n", cfg.Telemetry.Metrics.Enabled)
	return nil
}
