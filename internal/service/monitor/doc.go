// Package monitor implements the polling driver that ties the feed client,
// the area filter, the classifier and the alert state machine together and
// forwards emitted notifications to the MQTT publisher.
//
// One Run call owns one state machine for one area; all state mutation
// happens on the polling goroutine, so no locking is needed.
package monitor
