package alert

import "time"

// State is the alert lifecycle stage currently held for the monitored area.
type State int

const (
	// StateNone is the initial state before any alert has ever been seen.
	StateNone State = iota
	// StatePreWarning means the last emitted notification was a pre-warning.
	StatePreWarning
	// StateActive means the last emitted notification was an active alert.
	StateActive
	// StateAllClear means the last emitted notification was an all-clear.
	StateAllClear
)

// String returns a human-readable name for logging.
func (s State) String() string {
	switch s {
	case StatePreWarning:
		return "prewarning"
	case StateActive:
		return "active"
	case StateAllClear:
		return "allclear"
	default:
		return "none"
	}
}

// Wire values of the notification alert_type field.
const (
	TypePreWarning = "prewarning"
	TypeActive     = "active"
	TypeAllClear   = "allclear"
)

// Fixed human-readable notification text per alert type.
const (
	messagePreWarning      = "Pre-warning alert - Take shelter immediately"
	messageActive          = "ACTIVE RED ALERT - TAKE SHELTER NOW"
	messageAllClear        = "All clear - Threat has ended"
	messageNoActiveThreats = "All clear - No active threats"

	// titleNoActiveAlerts is used when the all-clear is inferred from the
	// area's absence from the feed, which carries no title of its own.
	titleNoActiveAlerts = "No active alerts"
)

// Notification is the event published when the alert state changes.
// It is emitted at most once per genuine state change and handed to the
// publisher immediately.
type Notification struct {
	// Timestamp is the alert time for explicit transitions, or the
	// current wall-clock time for an implicit all-clear.
	Timestamp time.Time `json:"timestamp"`
	// Area is the monitored area name.
	Area string `json:"area"`
	// AlertType is one of TypePreWarning, TypeActive or TypeAllClear.
	AlertType string `json:"alert_type"`
	// Title is the originating alert headline.
	Title string `json:"title"`
	// Message is the fixed human-readable text for the alert type.
	Message string `json:"message"`
}

// Monitor tracks the alert state for a single area and decides which
// classified alerts produce notifications. It is not safe for concurrent
// use; the driver owns the single instance and calls it from one goroutine.
type Monitor struct {
	// area is the monitored area name stamped into notifications.
	area string
	// current reflects the most recently emitted notification, not
	// merely the most recently seen category. A repeated alert of the
	// same kind never re-triggers a notification.
	current State
	// lastAlertTime is the timestamp of the last state change, zero
	// until the first transition.
	lastAlertTime time.Time
	// now supplies wall-clock time for implicit all-clear stamping.
	now func() time.Time
}

// NewMonitor creates a monitor for the given area in StateNone.
func NewMonitor(area string) *Monitor {
	return &Monitor{
		area: area,
		now:  time.Now,
	}
}

// State returns the current alert state.
func (m *Monitor) State() State {
	return m.current
}

// LastAlertTime returns the time of the last state change, zero if none.
func (m *Monitor) LastAlertTime() time.Time {
	return m.lastAlertTime
}

// ProcessCycle applies one polling cycle's filtered, classified alerts and
// returns the notifications to publish, in feed order.
//
// A non-empty cycle transitions once per alert whose kind is recognized
// and differs from the current state. An empty cycle while in
// StatePreWarning or StateActive is an implicit all-clear: the feed
// signals end-of-threat both explicitly (category 13) and by dropping the
// area entirely, and both paths must converge on the same idempotent
// StateAllClear. An empty cycle in StateAllClear or StateNone is
// quiescence and produces nothing.
func (m *Monitor) ProcessCycle(alerts []Classified) []Notification {
	if len(alerts) == 0 {
		return m.processSilence()
	}

	var notifications []Notification

	for _, classified := range alerts {
		state, recognized := stateFor(classified.Kind)
		if !recognized || state == m.current {
			continue
		}

		m.current = state
		m.lastAlertTime = classified.Timestamp

		notifications = append(notifications, Notification{
			Timestamp: classified.Timestamp,
			Area:      m.area,
			AlertType: typeFor(state),
			Title:     classified.Title,
			Message:   messageFor(state),
		})
	}

	return notifications
}

// processSilence handles a cycle with no alerts for the monitored area.
// The implicit all-clear is stamped with the current wall-clock time
// because an empty feed carries no timestamp to reuse.
func (m *Monitor) processSilence() []Notification {
	if m.current != StatePreWarning && m.current != StateActive {
		return nil
	}

	now := m.now()
	m.current = StateAllClear
	m.lastAlertTime = now

	return []Notification{{
		Timestamp: now,
		Area:      m.area,
		AlertType: TypeAllClear,
		Title:     titleNoActiveAlerts,
		Message:   messageNoActiveThreats,
	}}
}

// stateFor maps a classified kind to the state it transitions into.
// Returns false for KindUnrecognized, which never transitions.
func stateFor(kind Kind) (State, bool) {
	switch kind {
	case KindPreWarning:
		return StatePreWarning, true
	case KindActive:
		return StateActive, true
	case KindAllClear:
		return StateAllClear, true
	default:
		return StateNone, false
	}
}

// typeFor returns the wire alert_type value for a state.
func typeFor(state State) string {
	switch state {
	case StatePreWarning:
		return TypePreWarning
	case StateActive:
		return TypeActive
	default:
		return TypeAllClear
	}
}

// messageFor returns the fixed notification text for a state.
func messageFor(state State) string {
	switch state {
	case StatePreWarning:
		return messagePreWarning
	case StateActive:
		return messageActive
	default:
		return messageAllClear
	}
}
