package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"quillhq/scribe/pkg/cli"
	"quillhq/scribe/pkg/config"
	"quillhq/scribe/pkg/limits"
	"quillhq/scribe/pkg/providerfactory"
	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/registry"
	"quillhq/scribe/pkg/server"
	"quillhq/scribe/pkg/telemetry/logging"
	"quillhq/scribe/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the writing-tools proxy server",
	Long: `Start the proxy server with the specified configuration.

The server listens on the configured address, serves the /ai/<tool>
endpoints, and forwards each request to the configured LLM provider.
Configuration file changes are picked up automatically: the server
restarts gracefully with the new settings.

Examples:
  # Start with default config
  scribe serve

  # Start with custom config
  scribe serve --config /etc/scribe/config.yaml

  # Override listen address
  scribe serve --listen 0.0.0.0:8080

  # Validate config without starting the server
  scribe serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if serveFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	ctx := cli.SetupSignalHandler()

	// Config file changes restart the server with fresh settings. A
	// reload that fails validation is logged by the watcher and the
	// running instance keeps its configuration.
	reloadCh := make(chan *config.Config, 1)
	watcher, err := config.NewWatcher(cfgFile, func(next *config.Config) {
		applyFlagOverrides(next)
		select {
		case reloadCh <- next:
		default:
		}
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	if err := watcher.Start(); err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		defer watcher.Stop()
	}

	for {
		runCtx, cancel := context.WithCancel(ctx)
		errCh := make(chan error, 1)
		go func() {
			errCh <- runInstance(runCtx, cfg)
		}()

		select {
		case <-ctx.Done():
			cancel()
			return <-errCh

		case next := <-reloadCh:
			slog.Info("configuration changed, restarting server")
			cancel()
			if err := <-errCh; err != nil {
				return err
			}
			cfg = next

		case err := <-errCh:
			cancel()
			return err
		}
	}
}

// runInstance assembles and runs one server instance from a loaded
// configuration. It returns when ctx is cancelled or the listener
// fails.
func runInstance(ctx context.Context, cfg *config.Config) error {
	reg, err := buildRegistry(cfg)
	if err != nil {
		return cli.NewConfigError("tools", err.Error())
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return cli.NewConfigError("upstream", err.Error())
	}
	if provider != nil {
		defer provider.Close()
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics)
	}

	tracker, scheduler, err := buildLimits(cfg)
	if err != nil {
		return cli.NewConfigError("limits", err.Error())
	}
	if tracker != nil {
		defer tracker.Close()
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewConfigError("limits.reset_schedule", err.Error())
		}
		defer scheduler.Stop()
	}

	srv, err := server.New(server.Options{
		Config:   cfg,
		Registry: reg,
		Provider: provider,
		Metrics:  collector,
		Quota:    tracker,
		Version:  Version,
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	return srv.Start(ctx)
}

func loadServeConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	applyFlagOverrides(cfg)
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if serveFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

// buildRegistry converts configured tool overrides and creates the
// registry.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	overrides := make(map[string]registry.Override, len(cfg.Tools))
	for id, ov := range cfg.Tools {
		overrides[id] = registry.Override{
			SystemPrompt: ov.SystemPrompt,
			MaxTokens:    ov.MaxTokens,
			Temperature:  ov.Temperature,
		}
	}
	return registry.New(overrides)
}

// buildProvider creates the upstream adapter, or returns nil when no
// credential is configured. The server still starts in that case and
// reports a configuration error on each tool request, so /health stays
// available while the secret is provisioned.
func buildProvider(cfg *config.Config) (providers.Provider, error) {
	if cfg.Upstream.APIKey == "" {
		slog.Warn("no upstream API key configured, tool requests will fail",
			"provider", cfg.Upstream.Provider,
		)
		return nil, nil
	}

	return providerfactory.New(providers.ProviderConfig{
		Name:    cfg.Upstream.Provider,
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Model:   cfg.Upstream.Model,
		Timeout: cfg.Upstream.Timeout,
	})
}

// buildLimits creates the quota tracker and reset scheduler when
// quotas are enabled.
func buildLimits(cfg *config.Config) (*limits.Tracker, *limits.Scheduler, error) {
	if !cfg.Limits.Enabled {
		return nil, nil, nil
	}

	var store limits.Store
	switch cfg.Limits.Backend {
	case "sqlite":
		s, err := limits.NewSQLiteStore(cfg.Limits.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = s
	default:
		store = limits.NewMemoryStore()
	}

	tracker := limits.NewTracker(store, cfg.Limits.Daily)
	return tracker, limits.NewScheduler(tracker, cfg.Limits.ResetSchedule), nil
}
