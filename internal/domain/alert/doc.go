// Package alert contains core domain types for red alert monitoring.
//
// It defines Record (a typed feed entry), the closed category-to-kind
// classification table, and Monitor, the state machine that turns repeated
// feed snapshots into de-duplicated notification events.
package alert
