package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestClassifyCategory verifies the closed category table and that unknown
// codes map to KindUnrecognized.
func TestClassifyCategory(t *testing.T) {
	t.Parallel()

	cases := map[int]Kind{
		CategoryPreWarning: KindPreWarning,
		CategoryActive:     KindActive,
		CategoryAllClear:   KindAllClear,
		0:                  KindUnrecognized,
		2:                  KindUnrecognized,
		99:                 KindUnrecognized,
		-1:                 KindUnrecognized,
	}
	for category, kind := range cases {
		require.Equal(t, kind, ClassifyCategory(category), "category %d", category)
	}
}

// TestClassify verifies the classified view carries the record's title
// and timestamp.
func TestClassify(t *testing.T) {
	t.Parallel()

	ts := time.Now().UTC().Truncate(time.Second)
	record := Record{
		Category:  CategoryActive,
		Title:     "ירי רקטות וטילים",
		Area:      "רחובות",
		Timestamp: ts,
	}

	classified := Classify(record)
	require.Equal(t, KindActive, classified.Kind)
	require.Equal(t, record.Title, classified.Title)
	require.Equal(t, ts, classified.Timestamp)
}

// TestFilterArea verifies exact-match filtering preserves feed order and
// that a snapshot with no matching records filters down to nothing.
func TestFilterArea(t *testing.T) {
	t.Parallel()

	snapshot := []Record{
		{Category: CategoryActive, Area: "תל אביב"},
		{Category: CategoryPreWarning, Area: "רחובות", Title: "first"},
		{Category: CategoryActive, Area: "חיפה"},
		{Category: CategoryActive, Area: "רחובות", Title: "second"},
	}

	filtered := FilterArea(snapshot, "רחובות")
	require.Len(t, filtered, 2)
	require.Equal(t, "first", filtered[0].Title)
	require.Equal(t, "second", filtered[1].Title)

	// Other areas only behaves like an empty snapshot.
	require.Empty(t, FilterArea(snapshot, "אשדוד"))
	require.Empty(t, FilterArea(nil, "רחובות"))

	// Exact match, no normalization.
	require.Empty(t, FilterArea(snapshot, " רחובות"))
}
