package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/idanlevi/redalert-monitor/internal/config"
	"github.com/idanlevi/redalert-monitor/internal/feed"
	"github.com/idanlevi/redalert-monitor/internal/logger"
	"github.com/idanlevi/redalert-monitor/internal/notify"
)

// Options controls the monitor polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// TargetArea provides an optional target area override.
	TargetArea string
	// PollInterval provides an optional poll interval override.
	PollInterval time.Duration
}

// Run polls the alerts feed and publishes state transitions to MQTT until
// the context is canceled. Loads configuration first, connects to the
// broker, then drives the fetch-classify-publish cycle on a fixed ticker.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "redalert-monitor")

	// Load settings from configuration file and environment.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Command line overrides win over file and environment.
	if opts.TargetArea != "" {
		cfg.TargetArea = opts.TargetArea
	}

	if opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}

	fetcher := feed.NewClient(cfg.AlertsURL, feed.WithTimeout(cfg.RequestTimeout))

	logger.InfoKV(ctx, "Connecting to MQTT broker",
		"broker", cfg.MQTT.Broker, "port", cfg.MQTT.Port, "client_id", cfg.MQTT.ClientID)

	publisher, err := notify.Connect(ctx, cfg.MQTT.Broker, cfg.MQTT.Port,
		notify.WithClientID(cfg.MQTT.ClientID),
		notify.WithCredentials(cfg.MQTT.Username, cfg.MQTT.Password),
		notify.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("connect publisher: %w", err)
	}

	// Ensure broker disconnect on function exit.
	defer publisher.Close()

	svc := newService(cfg, fetcher, publisher)

	logger.InfoKV(ctx, "Monitoring alerts",
		"target_area", cfg.TargetArea,
		"poll_interval", cfg.PollInterval.String(),
		"alerts_url", cfg.AlertsURL)

	// Setup polling ticker with fixed interval.
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	// Main polling loop until context cancellation.
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			svc.runCycle(ctx)
		}
	}
}
