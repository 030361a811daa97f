package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the monitor settings: feed endpoint, target area, polling
// cadence and MQTT connection parameters.
type Config struct {
	// AlertsURL is the Home Front Command active-alerts feed endpoint.
	AlertsURL string `yaml:"alerts_url"`
	// TargetArea is the area name matched exactly against the feed's
	// data field.
	TargetArea string `yaml:"target_area"`
	// PollInterval is the delay between feed fetches.
	PollInterval time.Duration `yaml:"poll_interval"`
	// RequestTimeout bounds a single feed request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// MQTT holds broker connection parameters.
	MQTT MQTT `yaml:"mqtt"`
	// Topics holds the per-alert-type MQTT topic names.
	Topics Topics `yaml:"topics"`
}

// MQTT holds broker connection parameters.
type MQTT struct {
	// Broker is the MQTT broker hostname or IP.
	Broker string `yaml:"broker"`
	// Port is the MQTT broker port.
	Port int `yaml:"port"`
	// Username authenticates against the broker; empty means anonymous.
	Username string `yaml:"username"`
	// Password pairs with Username.
	Password string `yaml:"password"`
	// ClientID identifies this monitor to the broker.
	ClientID string `yaml:"client_id"`
}

// Topics maps each alert type to the MQTT topic it is published on.
// Topic names are configuration, not protocol.
type Topics struct {
	// PreWarning receives pre-warning notifications.
	PreWarning string `yaml:"prewarning"`
	// Active receives active red alert notifications.
	Active string `yaml:"active"`
	// AllClear receives explicit and implicit all-clear notifications.
	AllClear string `yaml:"allclear"`
}

const (
	// DefaultConfigFilename is the default filename for monitor settings.
	DefaultConfigFilename = "redalert-monitor-settings.yaml"

	// DefaultAlertsURL is the public active-alerts feed endpoint.
	DefaultAlertsURL = "https://www.oref.org.il/warningMessages/alert/Alerts.json"

	// DefaultPollInterval is the default delay between feed fetches.
	DefaultPollInterval = 5 * time.Second

	// DefaultRequestTimeout is the default per-request timeout.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultMQTTPort is the standard unencrypted MQTT port.
	DefaultMQTTPort = 1883

	// DefaultClientID is the default MQTT client identifier.
	DefaultClientID = "redalert-monitor"

	// DefaultFilePermissions is the file permission for written settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTargetAreaRequired is returned when no target area is configured.
	errTargetAreaRequired = errors.New("target area must be provided")
	// errBrokerRequired is returned when no MQTT broker is configured.
	errBrokerRequired = errors.New("MQTT broker must be provided")
)

// Default returns a configuration with every optional field set to its
// default. TargetArea and MQTT.Broker have no sensible defaults and must
// come from the file or the environment.
func Default() *Config {
	return &Config{
		AlertsURL:      DefaultAlertsURL,
		PollInterval:   DefaultPollInterval,
		RequestTimeout: DefaultRequestTimeout,
		MQTT: MQTT{
			Port:     DefaultMQTTPort,
			ClientID: DefaultClientID,
		},
		Topics: Topics{
			PreWarning: "redalert/prewarning",
			Active:     "redalert/active",
			AllClear:   "redalert/allclear",
		},
	}
}

// Load reads configuration from the provided path, applies environment
// overrides and validates the result. When path is empty and the default
// settings file does not exist, the monitor can run on environment
// variables alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No settings file; environment and defaults carry the config.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	applyEnv(cfg)

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, the file may hold broker credentials.
	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills remaining defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TargetArea == "" {
		return errTargetAreaRequired
	}

	if cfg.MQTT.Broker == "" {
		return errBrokerRequired
	}

	if cfg.AlertsURL == "" {
		cfg.AlertsURL = DefaultAlertsURL
	}

	if _, err := url.ParseRequestURI(cfg.AlertsURL); err != nil {
		return fmt.Errorf("invalid alerts URL: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.MQTT.Port <= 0 {
		cfg.MQTT.Port = DefaultMQTTPort
	}

	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultClientID
	}

	defaults := Default().Topics
	if cfg.Topics.PreWarning == "" {
		cfg.Topics.PreWarning = defaults.PreWarning
	}

	if cfg.Topics.Active == "" {
		cfg.Topics.Active = defaults.Active
	}

	if cfg.Topics.AllClear == "" {
		cfg.Topics.AllClear = defaults.AllClear
	}

	return nil
}

// applyEnv overrides configuration values from environment variables.
// Interval variables are plain integers interpreted as seconds.
func applyEnv(cfg *Config) {
	envString("ALERTS_URL", &cfg.AlertsURL)
	envString("TARGET_AREA", &cfg.TargetArea)
	envSeconds("POLL_INTERVAL", &cfg.PollInterval)
	envSeconds("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	envString("MQTT_BROKER", &cfg.MQTT.Broker)
	envInt("MQTT_PORT", &cfg.MQTT.Port)
	envString("MQTT_USERNAME", &cfg.MQTT.Username)
	envString("MQTT_PASSWORD", &cfg.MQTT.Password)
	envString("MQTT_CLIENT_ID", &cfg.MQTT.ClientID)
	envString("TOPIC_PREWARNING", &cfg.Topics.PreWarning)
	envString("TOPIC_ACTIVE", &cfg.Topics.Active)
	envString("TOPIC_ALLCLEAR", &cfg.Topics.AllClear)
}

// envString copies the environment variable into dst when it is set.
func envString(key string, dst *string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

// envInt parses the environment variable into dst when it is a valid integer.
func envInt(key string, dst *int) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return
	}

	*dst = parsed
}

// envSeconds parses the environment variable as a whole number of seconds.
func envSeconds(key string, dst *time.Duration) {
	var seconds int

	envInt(key, &seconds)

	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}
