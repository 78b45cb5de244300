package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quillhq/scribe/pkg/cli"
	"quillhq/scribe/pkg/config"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available writing tools",
	Long: `List the available writing tools with their effective generation
parameters, including any overrides from the configuration file.`,
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return cli.NewConfigError("tools", err.Error())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tMAX TOKENS\tTEMPERATURE\tDAILY LIMIT")
	for _, id := range reg.Tools() {
		profile, err := reg.Lookup(id)
		if err != nil {
			return cli.NewCommandError("tools", err)
		}

		limit := "unlimited"
		if cfg.Limits.Enabled {
			if n, ok := cfg.Limits.Daily[id]; ok {
				limit = fmt.Sprintf("%d", n)
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%s\n", id, profile.MaxTokens, profile.Temperature, limit)
	}
	return w.Flush()
}
