package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing target area.
	cfg := new(Config)
	require.Error(t, Validate(cfg))

	// Missing broker.
	cfg = &Config{TargetArea: "רחובות"}
	require.Error(t, Validate(cfg))

	// Bad alerts URL.
	cfg = &Config{
		TargetArea: "רחובות",
		AlertsURL:  "not a url",
		MQTT:       MQTT{Broker: "192.168.0.44"},
	}
	require.Error(t, Validate(cfg))

	// Minimal valid config gets defaults filled in.
	cfg = &Config{
		TargetArea: "רחובות",
		MQTT:       MQTT{Broker: "192.168.0.44"},
	}
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultAlertsURL, cfg.AlertsURL)
	require.Equal(t, DefaultPollInterval, cfg.PollInterval)
	require.Equal(t, DefaultMQTTPort, cfg.MQTT.Port)
	require.Equal(t, DefaultClientID, cfg.MQTT.ClientID)
	require.Equal(t, "redalert/allclear", cfg.Topics.AllClear)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back.
func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := Default()
	cfg.TargetArea = "רחובות"
	cfg.MQTT.Broker = "broker.local"
	cfg.MQTT.Username = "monitor"
	cfg.PollInterval = 7 * time.Second

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.TargetArea, loaded.TargetArea)
	require.Equal(t, cfg.MQTT.Broker, loaded.MQTT.Broker)
	require.Equal(t, cfg.MQTT.Username, loaded.MQTT.Username)
	require.Equal(t, 7*time.Second, loaded.PollInterval)
}

// TestLoadMissingExplicitPath ensures an explicitly named file must exist.
func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestEnvOverrides ensures environment variables win over file values and
// interval variables are read as seconds.
func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := Default()
	cfg.TargetArea = "חיפה"
	cfg.MQTT.Broker = "broker.local"
	require.NoError(t, Save(path, cfg))

	t.Setenv("TARGET_AREA", "רחובות")
	t.Setenv("POLL_INTERVAL", "30")
	t.Setenv("MQTT_PORT", "8883")
	t.Setenv("TOPIC_ACTIVE", "home/redalert/active")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "רחובות", loaded.TargetArea)
	require.Equal(t, 30*time.Second, loaded.PollInterval)
	require.Equal(t, 8883, loaded.MQTT.Port)
	require.Equal(t, "home/redalert/active", loaded.Topics.Active)

	// Garbage numbers are ignored, file value stands.
	t.Setenv("MQTT_PORT", "not-a-port")

	loaded, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultMQTTPort, loaded.MQTT.Port)
}
