package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/idanlevi/redalert-monitor/internal/config"
	"github.com/idanlevi/redalert-monitor/internal/logger"
	"github.com/idanlevi/redalert-monitor/internal/service/monitor"
	"github.com/idanlevi/redalert-monitor/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel stores the requested logging level.
	logLevel string
	// pollInterval overrides the configured polling interval when positive.
	pollInterval time.Duration

	// rootCmd represents the base command for monitoring red alerts.
	rootCmd = &cobra.Command{
		Use:   "redalert-monitor [target-area]",
		Short: "Bridge Home Front Command red alerts to MQTT.",
		Long: `Daemon that polls the Home Front Command active-alerts feed for a single area
and publishes de-duplicated notification events (pre-warning, active alert,
all clear) to MQTT topics.

The feed is polled at a fixed interval; a state machine suppresses repeated
alerts of the same kind and infers an all-clear when the area disappears from
the feed. Settings come from a YAML file overlaid with environment variables
(a .env file next to the binary is honored). The target area can be provided
as an argument to override the configured one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Best-effort .env loading before the config reads the environment.
			_ = godotenv.Load()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Use target area argument if provided, otherwise rely on config.
			var targetArea string
			if len(args) > 0 {
				targetArea = args[0]
			}

			monitorOptions := &monitor.Options{
				ConfigPath:   configPath,
				TargetArea:   targetArea,
				PollInterval: pollInterval,
			}

			return monitor.Run(ctx, monitorOptions)
		},
	}

	// initCmd writes a starter settings file with default values.
	initCmd = &cobra.Command{
		Use:   "init [target-area]",
		Short: "Write a starter configuration file.",
		Long: `Write a configuration file populated with default values to the path given
by --config (or the default settings filename). Edit the file afterwards to
set the MQTT broker and, unless provided as an argument, the target area.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if len(args) > 0 {
				cfg.TargetArea = args[0]
			}

			path := configPath
			if path == "" {
				path = config.DefaultConfigFilename
			}

			if err := config.Save(path, cfg); err != nil {
				return err
			}

			logger.Infof(cmd.Context(), "Wrote starter configuration to %s", path)

			return nil
		},
	}
)

// Execute runs the redalert-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level (debug, info, warn, error)")
	rootCmd.Flags().DurationVarP(&pollInterval, "poll-interval", "p", 0, "override the polling interval")
}
