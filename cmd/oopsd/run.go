package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nesteban/oops/pkg/config"
	"github.com/nesteban/oops/pkg/faults"
	"github.com/nesteban/oops/pkg/server"
	"github.com/nesteban/oops/pkg/telemetry/diagnostics"
	"github.com/nesteban/oops/pkg/telemetry/logging"
	"github.com/nesteban/oops/pkg/telemetry/metrics"
	"github.com/nesteban/oops/pkg/workers"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	exposeStack   bool
	demo          bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the oopsd server",
	Long: `Start the oopsd server with the specified configuration.

Examples:
  # Start with default config
  oopsd run

  # Start with custom config
  oopsd run --config /etc/oopsd/config.yaml

  # Override listen address
  oopsd run --listen 0.0.0.0:8080

  # Mount demo endpoints that exercise the fault pipeline
  oopsd run --demo

  # Validate config without starting server
  oopsd run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.exposeStack, "expose-stack", false, "include stack traces in error pages")
	runCmd.Flags().BoolVar(&runFlags.demo, "demo", false, "mount demo endpoints that fail on purpose")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if runFlags.exposeStack {
		cfg.Faults.ExposeStack = true
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	var m *metrics.FaultMetrics
	if cfg.Telemetry.Metrics.Enabled {
		m = metrics.New(metrics.Config{Namespace: cfg.Telemetry.Metrics.Namespace}, nil)
	}

	// Diagnostics side channel
	var store *diagnostics.Store
	var diagReporter faults.Reporter
	if cfg.Diagnostics.Enabled {
		if dir := filepath.Dir(cfg.Diagnostics.StorePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create diagnostics directory: %w", err)
			}
		}

		store, err = diagnostics.OpenStore(&diagnostics.StoreConfig{
			Path: cfg.Diagnostics.StorePath,
		})
		if err != nil {
			return fmt.Errorf("failed to open diagnostics store: %w", err)
		}
		defer store.Close()

		diagReporter = diagnostics.NewReporter(logger, store, m)
	}

	// Fault pipeline
	renderer := faults.NewPageRenderer(cfg.Faults.ExposeStack)
	interceptor := faults.NewInterceptor(logger, diagReporter, renderer)
	background := backgroundHandler(logger, diagReporter, m)

	if store != nil {
		digest := diagnostics.NewDigest(store, cfg.Diagnostics.DigestSchedule, background)
		if err := digest.Start(ctx); err != nil {
			// A broken schedule degrades the digest, not the server.
			logger.Warn("diagnostics digest not started", "error", err)
		} else {
			defer digest.Stop()
		}
	}

	// Worker runtime
	rt := workers.New()
	if err := rt.SetFaultHandler(background); err != nil {
		// Workers fall back to plain error logging; everything else keeps
		// working.
		logger.Error("background fault handler not registered, diagnostics for workers degraded",
			"error", err,
		)
	}

	// Config watcher for hot reload of the faults section
	if cfg.Faults.WatchConfig {
		watcher, err := config.NewWatcher(cfgFile, logger)
		if err != nil {
			logger.Warn("configuration watcher not started", "error", err)
		} else {
			defer watcher.Stop()
			rt.Spawn("config-watcher", func() {
				err := watcher.Watch(ctx, func(next *config.Config) {
					renderer.SetExposeStack(next.Faults.ExposeStack)
					logger.Info("fault settings reloaded",
						"expose_stack", next.Faults.ExposeStack,
					)
				})
				if err != nil {
					logger.Error("configuration watcher failed", "error", err)
				}
			})
		}
	}

	app := newApp(background, runFlags.demo)
	srv := server.NewServer(&cfg.Server, app, interceptor, m)
	srv.SetMetricsPath(cfg.Telemetry.Metrics.Path)

	logger.Info("starting oopsd",
		"version", Version,
		"address", cfg.Server.ListenAddress,
		"metrics_enabled", cfg.Telemetry.Metrics.Enabled,
		"diagnostics_enabled", cfg.Diagnostics.Enabled,
	)

	// Blocks until a shutdown signal, context cancellation, or a fatal
	// server error.
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	cancel()
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer waitCancel()
	if err := rt.Wait(waitCtx); err != nil {
		logger.Warn("workers did not finish before timeout", "error", err)
	}

	logger.Info("oopsd stopped")
	return nil
}

// loadConfig loads the configuration file named by --config. When the flag
// was left at its default and no such file exists, built-in defaults are
// used so the server runs out of the box.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !cmd.Flags().Changed("config") && !cmd.InheritedFlags().Changed("config") {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// backgroundHandler builds the handler for worker goroutine faults. The
// metrics counter rides along as an extra reporter so background deaths
// show up on the dashboard alongside request faults.
func backgroundHandler(logger *slog.Logger, diagReporter faults.Reporter, m *metrics.FaultMetrics) *faults.BackgroundHandler {
	reporters := []faults.Reporter{}
	if diagReporter != nil {
		reporters = append(reporters, diagReporter)
	}
	if m != nil {
		reporters = append(reporters, faults.ReporterFunc(func(error) {
			m.BackgroundFault()
		}))
	}
	return faults.NewBackgroundHandler(logger, faults.MultiReporter(logger, reporters...))
}
