package monitor

import (
	"context"

	"github.com/idanlevi/redalert-monitor/internal/config"
	"github.com/idanlevi/redalert-monitor/internal/domain/alert"
	"github.com/idanlevi/redalert-monitor/internal/logger"
)

// Fetcher retrieves one snapshot of currently-active alerts from the feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]alert.Record, error)
}

// Publisher delivers a notification event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event alert.Notification) error
}

// service runs the per-cycle pipeline: fetch, filter, classify, apply the
// state machine and publish whatever it emits.
type service struct {
	// cfg holds the target area and topic routing.
	cfg *config.Config
	// fetcher obtains feed snapshots.
	fetcher Fetcher
	// publisher delivers notification events.
	publisher Publisher
	// monitor is the single state machine instance for the target area.
	monitor *alert.Monitor
}

// newService creates the pipeline around a fresh state machine.
func newService(cfg *config.Config, fetcher Fetcher, publisher Publisher) *service {
	return &service{
		cfg:       cfg,
		fetcher:   fetcher,
		publisher: publisher,
		monitor:   alert.NewMonitor(cfg.TargetArea),
	}
}

// runCycle performs one polling cycle. A fetch failure abandons the cycle
// without touching the state machine; the next tick simply tries again.
func (s *service) runCycle(ctx context.Context) {
	snapshot, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Fetch alerts failed, will retry next cycle", "error", err)
		return
	}

	filtered := alert.FilterArea(snapshot, s.cfg.TargetArea)
	if len(filtered) == 0 && s.monitor.State() != alert.StatePreWarning && s.monitor.State() != alert.StateActive {
		logger.Debug(ctx, "No alerts in the target area, everything is good")
	}

	for _, event := range s.monitor.ProcessCycle(s.classify(ctx, filtered)) {
		s.deliver(ctx, event)
	}
}

// classify maps filtered records to classified alerts, logging unknown
// category codes. Unrecognized alerts stay in the cycle so a cycle that
// holds only unknown codes is not mistaken for silence.
func (s *service) classify(ctx context.Context, records []alert.Record) []alert.Classified {
	classified := make([]alert.Classified, 0, len(records))

	for _, record := range records {
		c := alert.Classify(record)
		if c.Kind == alert.KindUnrecognized {
			logger.WarnKV(ctx, "Unknown alert category", "category", record.Category, "title", record.Title)
		} else {
			logger.InfoKV(ctx, "Processing alert",
				"kind", c.Kind.String(), "title", record.Title, "area", record.Area)
		}

		classified = append(classified, c)
	}

	return classified
}

// deliver publishes a single notification to its configured topic.
// A failed publish is logged and dropped; the state transition that
// produced it stands, so delivery is at most once.
func (s *service) deliver(ctx context.Context, event alert.Notification) {
	topic := s.topicFor(event.AlertType)

	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		logger.ErrorKV(ctx, "Publish notification failed", "topic", topic, "error", err)
		return
	}

	logger.InfoKV(ctx, "Published notification",
		"topic", topic, "alert_type", event.AlertType, "title", event.Title)
}

// topicFor routes an alert type to its configured MQTT topic.
func (s *service) topicFor(alertType string) string {
	switch alertType {
	case alert.TypePreWarning:
		return s.cfg.Topics.PreWarning
	case alert.TypeActive:
		return s.cfg.Topics.Active
	default:
		return s.cfg.Topics.AllClear
	}
}
