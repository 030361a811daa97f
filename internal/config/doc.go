// Package config defines monitor settings and provides helpers to load,
// validate and save them.
//
// Settings come from a YAML file overlaid with environment variables
// (ALERTS_URL, TARGET_AREA, POLL_INTERVAL, MQTT_* and TOPIC_*), so the
// monitor can run from a file, the environment, or a mix of both.
package config
