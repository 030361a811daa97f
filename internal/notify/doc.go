// Package notify publishes notification events to an MQTT broker using
// the paho client.
//
// Delivery is at-most-once from the monitor's point of view: a failed
// publish is logged by the caller and never retried, and the state
// transition that produced it is not rolled back.
package notify
