package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedClock pins the monitor's wall clock so implicit all-clear
// timestamps are deterministic.
func fixedClock(m *Monitor, at time.Time) {
	m.now = func() time.Time { return at }
}

// TestProcessCycleTransitions verifies the category-to-notification mapping
// including the fixed message per alert type.
func TestProcessCycleTransitions(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 14, 8, 30, 0, 0, time.UTC)

	cases := []struct {
		name      string
		kind      Kind
		wantType  string
		wantMsg   string
		wantState State
	}{
		{
			name:      "prewarning",
			kind:      KindPreWarning,
			wantType:  TypePreWarning,
			wantMsg:   "Pre-warning alert - Take shelter immediately",
			wantState: StatePreWarning,
		},
		{
			name:      "active",
			kind:      KindActive,
			wantType:  TypeActive,
			wantMsg:   "ACTIVE RED ALERT - TAKE SHELTER NOW",
			wantState: StateActive,
		},
		{
			name:      "allclear",
			kind:      KindAllClear,
			wantType:  TypeAllClear,
			wantMsg:   "All clear - Threat has ended",
			wantState: StateAllClear,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := NewMonitor("רחובות")

			events := m.ProcessCycle([]Classified{{Kind: tc.kind, Title: "headline", Timestamp: ts}})
			require.Len(t, events, 1)
			require.Equal(t, tc.wantType, events[0].AlertType)
			require.Equal(t, tc.wantMsg, events[0].Message)
			require.Equal(t, "headline", events[0].Title)
			require.Equal(t, "רחובות", events[0].Area)
			require.Equal(t, ts, events[0].Timestamp)
			require.Equal(t, tc.wantState, m.State())
			require.Equal(t, ts, m.LastAlertTime())
		})
	}
}

// TestProcessCycleIdempotence verifies that repeating the same alert kind
// across cycles yields exactly one notification.
func TestProcessCycleIdempotence(t *testing.T) {
	t.Parallel()

	m := NewMonitor("רחובות")
	active := []Classified{{Kind: KindActive, Title: "headline", Timestamp: time.Now()}}

	events := m.ProcessCycle(active)
	require.Len(t, events, 1)

	for i := 0; i < 3; i++ {
		require.Empty(t, m.ProcessCycle(active))
	}

	require.Equal(t, StateActive, m.State())
}

// TestProcessCycleUnrecognized verifies unknown categories produce no
// notification, leave state untouched, and do not count as silence.
func TestProcessCycleUnrecognized(t *testing.T) {
	t.Parallel()

	m := NewMonitor("רחובות")

	require.Empty(t, m.ProcessCycle([]Classified{{Kind: KindUnrecognized, Timestamp: time.Now()}}))
	require.Equal(t, StateNone, m.State())

	// A cycle holding only unrecognized alerts is non-empty, so it must
	// not be treated as an implicit all-clear either.
	m.ProcessCycle([]Classified{{Kind: KindActive, Timestamp: time.Now()}})
	require.Empty(t, m.ProcessCycle([]Classified{{Kind: KindUnrecognized, Timestamp: time.Now()}}))
	require.Equal(t, StateActive, m.State())
}

// TestProcessCycleImplicitAllClear verifies an empty cycle during an active
// alert emits exactly one all-clear stamped with the current wall clock.
func TestProcessCycleImplicitAllClear(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	m := NewMonitor("רחובות")
	fixedClock(m, now)

	m.ProcessCycle([]Classified{{Kind: KindActive, Title: "headline", Timestamp: now.Add(-time.Minute)}})

	events := m.ProcessCycle(nil)
	require.Len(t, events, 1)
	require.Equal(t, TypeAllClear, events[0].AlertType)
	require.Equal(t, "No active alerts", events[0].Title)
	require.Equal(t, "All clear - No active threats", events[0].Message)
	require.Equal(t, now, events[0].Timestamp)
	require.Equal(t, StateAllClear, m.State())
	require.Equal(t, now, m.LastAlertTime())

	// Further silence is quiescence, not a repeated all-clear.
	require.Empty(t, m.ProcessCycle(nil))
}

// TestProcessCycleQuiescence verifies empty cycles in StateNone or
// StateAllClear report nothing.
func TestProcessCycleQuiescence(t *testing.T) {
	t.Parallel()

	m := NewMonitor("רחובות")
	require.Empty(t, m.ProcessCycle(nil))
	require.Equal(t, StateNone, m.State())

	m.ProcessCycle([]Classified{{Kind: KindAllClear, Timestamp: time.Now()}})
	require.Empty(t, m.ProcessCycle(nil))
	require.Equal(t, StateAllClear, m.State())
}

// TestProcessCycleOrdering verifies a single cycle holding a pre-warning
// followed by an active alert emits both notifications in feed order.
func TestProcessCycleOrdering(t *testing.T) {
	t.Parallel()

	ts := time.Now()
	m := NewMonitor("רחובות")

	events := m.ProcessCycle([]Classified{
		{Kind: KindPreWarning, Title: "early", Timestamp: ts},
		{Kind: KindActive, Title: "sirens", Timestamp: ts.Add(time.Second)},
	})
	require.Len(t, events, 2)
	require.Equal(t, TypePreWarning, events[0].AlertType)
	require.Equal(t, TypeActive, events[1].AlertType)
	require.Equal(t, StateActive, m.State())
}

// TestExplicitAndImplicitAllClearConverge verifies both all-clear paths
// land on the same state and stay idempotent across each other.
func TestExplicitAndImplicitAllClearConverge(t *testing.T) {
	t.Parallel()

	m := NewMonitor("רחובות")
	m.ProcessCycle([]Classified{{Kind: KindActive, Timestamp: time.Now()}})

	// Explicit all-clear, then silence: no second notification.
	events := m.ProcessCycle([]Classified{{Kind: KindAllClear, Timestamp: time.Now()}})
	require.Len(t, events, 1)
	require.Empty(t, m.ProcessCycle(nil))

	// A repeated explicit all-clear after the implicit path is also a no-op.
	m.ProcessCycle([]Classified{{Kind: KindActive, Timestamp: time.Now()}})
	require.Len(t, m.ProcessCycle(nil), 1)
	require.Empty(t, m.ProcessCycle([]Classified{{Kind: KindAllClear, Timestamp: time.Now()}}))
	require.Equal(t, StateAllClear, m.State())
}
