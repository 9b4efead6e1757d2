package domain

import "strings"

// MoodLabel is an opaque mood identifier produced by the classifier.
// The empty label means no mood is active.
type MoodLabel string

// Labels registered by the default catalog.
const (
	MoodCalm        MoodLabel = "Calm"
	MoodAnxious     MoodLabel = "Anxious"
	MoodOverwhelmed MoodLabel = "Overwhelmed"
	MoodLow         MoodLabel = "Low"
	MoodSad         MoodLabel = "Sad"
	MoodEnergized   MoodLabel = "Energized"
	MoodFocused     MoodLabel = "Focused"
)

// FallbackMood is the label whose ritual is used for unregistered labels.
// Every ritual table must contain it.
const FallbackMood = MoodCalm

// MoodNone is the label of the idle state.
const MoodNone MoodLabel = ""

// IsNone reports whether no mood is set.
func (m MoodLabel) IsNone() bool {
	return m == MoodNone
}

// String implements fmt.Stringer.
func (m MoodLabel) String() string {
	return string(m)
}

// ParseMoodLabel trims the raw classifier output. Case is preserved because
// table lookups are exact.
func ParseMoodLabel(raw string) MoodLabel {
	return MoodLabel(strings.TrimSpace(raw))
}
