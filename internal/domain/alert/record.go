package alert

import "time"

// Category codes used by the Home Front Command alerts feed.
const (
	// CategoryActive is an active red alert (rocket or missile fire).
	CategoryActive = 1
	// CategoryAllClear is an explicit end-of-threat notice.
	CategoryAllClear = 13
	// CategoryPreWarning is an early warning issued before sirens sound.
	CategoryPreWarning = 14
)

// Kind is the semantic meaning of a feed record's category code.
type Kind int

const (
	// KindUnrecognized marks category codes outside the known table.
	// Unrecognized alerts never produce a state transition.
	KindUnrecognized Kind = iota
	// KindPreWarning is an early warning before an active alert.
	KindPreWarning
	// KindActive is an active red alert.
	KindActive
	// KindAllClear is an explicit all-clear notice.
	KindAllClear
)

// String returns a human-readable name for logging.
func (k Kind) String() string {
	switch k {
	case KindPreWarning:
		return "prewarning"
	case KindActive:
		return "active"
	case KindAllClear:
		return "allclear"
	default:
		return "unrecognized"
	}
}

// Record is one entry from a feed snapshot, validated and typed at the
// feed boundary.
type Record struct {
	// Category is the raw category code from the feed.
	Category int
	// Title is the alert headline as published by the feed.
	Title string
	// Area is the location name the alert applies to.
	Area string
	// Timestamp is the alert time; the feed client substitutes the
	// current time when the feed value is missing or unparseable.
	Timestamp time.Time
}

// Classified pairs a record's semantic kind with the fields carried into
// a notification.
type Classified struct {
	// Kind is the semantic meaning of the record's category code.
	Kind Kind
	// Title is the originating record's headline.
	Title string
	// Timestamp is the originating record's alert time.
	Timestamp time.Time
}

// ClassifyCategory maps a raw category code to its semantic kind.
// The mapping is a closed table; unknown codes map to KindUnrecognized.
func ClassifyCategory(category int) Kind {
	switch category {
	case CategoryPreWarning:
		return KindPreWarning
	case CategoryActive:
		return KindActive
	case CategoryAllClear:
		return KindAllClear
	default:
		return KindUnrecognized
	}
}

// Classify derives the classified view of a single record.
func Classify(record Record) Classified {
	return Classified{
		Kind:      ClassifyCategory(record.Category),
		Title:     record.Title,
		Timestamp: record.Timestamp,
	}
}

// FilterArea returns the records whose area matches the target area
// exactly, preserving feed order. No normalization is applied.
func FilterArea(records []Record, targetArea string) []Record {
	var filtered []Record

	for _, record := range records {
		if record.Area == targetArea {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
