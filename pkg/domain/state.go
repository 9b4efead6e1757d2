package domain

// Phase defines where the check-in cycle currently is.
type Phase string

const (
	PhaseIdle    Phase = "idle"    // Input screen
	PhasePending Phase = "pending" // Waiting for the classifier
	PhasePlaying Phase = "playing" // Ritual playback
)

// Session is a snapshot of the check-in cycle.
// Snapshots are values; mutating one never affects the controller.
type Session struct {
	// Phase is derived from Pending and Mood, stored for convenience.
	Phase Phase `json:"phase"`

	// RawInput is the last submitted text. Preserved on classification failure.
	RawInput string `json:"raw_input"`

	// Mood is MoodNone while idle or pending.
	Mood MoodLabel `json:"mood"`

	// Ritual is set iff Mood is set. It points into the catalog.
	Ritual *Ritual `json:"ritual,omitempty"`

	// Step indexes Ritual.Steps; 0 outside playback.
	Step int `json:"step"`

	// Pending is true between dispatch and resolution of a classification.
	Pending bool `json:"pending"`

	// Confidence of the accepted classification, 0 when unknown.
	Confidence float64 `json:"confidence,omitempty"`

	// Notice is the user-facing message of the last failed classification.
	Notice string `json:"notice,omitempty"`

	// Generation identifies the most recent dispatch or reset.
	Generation uint64 `json:"generation"`
}

// IdleSession returns the idle default. Generation is left to the caller.
func IdleSession() Session {
	return Session{Phase: PhaseIdle}
}

// CurrentStep returns the step text under the cursor, or "".
func (s Session) CurrentStep() string {
	if s.Ritual == nil {
		return ""
	}
	return s.Ritual.Step(s.Step)
}

// IsLastStep reports whether the cursor is on the final step of the ritual.
func (s Session) IsLastStep() bool {
	return s.Ritual != nil && s.Ritual.IsLast(s.Step)
}
