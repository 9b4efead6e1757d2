// Package catalog holds the read-only Ritual and Theme tables.
//
// Tables are built once, validated, and never mutated afterwards, so they are
// safe for unsynchronized concurrent reads.
package catalog

import (
	"fmt"

	"github.com/aretw0/moodscape/pkg/domain"
)

// Entry registers one mood in a catalog.
type Entry struct {
	Mood   domain.MoodLabel
	Ritual domain.Ritual
	Theme  domain.Theme
}

// Rituals maps mood labels to rituals with a guaranteed fallback.
type Rituals struct {
	byMood map[domain.MoodLabel]*domain.Ritual
	order  []domain.MoodLabel
}

// NewRituals validates entries and builds the table. The fallback mood must be present.
func NewRituals(entries []Entry) (*Rituals, error) {
	t := &Rituals{byMood: make(map[domain.MoodLabel]*domain.Ritual, len(entries))}
	for _, e := range entries {
		if e.Mood.IsNone() {
			return nil, fmt.Errorf("%w: entry without mood", domain.ErrInvalidRitual)
		}
		if _, dup := t.byMood[e.Mood]; dup {
			return nil, fmt.Errorf("%w: duplicate mood %q", domain.ErrInvalidRitual, e.Mood)
		}
		r := e.Ritual
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("mood %q: %w", e.Mood, err)
		}
		r.Steps = append([]string(nil), r.Steps...)
		t.byMood[e.Mood] = &r
		t.order = append(t.order, e.Mood)
	}
	if _, ok := t.byMood[domain.FallbackMood]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingFallback, domain.FallbackMood)
	}
	return t, nil
}

// Lookup returns the ritual registered for label.
func (t *Rituals) Lookup(label domain.MoodLabel) (*domain.Ritual, bool) {
	r, ok := t.byMood[label]
	return r, ok
}

// Resolve returns the ritual for label, or the fallback ritual when label is
// not registered. It never fails.
func (t *Rituals) Resolve(label domain.MoodLabel) *domain.Ritual {
	if r, ok := t.byMood[label]; ok {
		return r
	}
	return t.byMood[domain.FallbackMood]
}

// Fallback returns the ritual used for unregistered labels.
func (t *Rituals) Fallback() *domain.Ritual {
	return t.byMood[domain.FallbackMood]
}

// Labels returns the registered moods in registration order.
func (t *Rituals) Labels() []domain.MoodLabel {
	return append([]domain.MoodLabel(nil), t.order...)
}

// Themes maps mood labels to themes with a designated default.
type Themes struct {
	byMood map[domain.MoodLabel]domain.Theme
	def    domain.Theme
}

// NewThemes builds a theme table from entries. Entries without a theme are skipped.
func NewThemes(def domain.Theme, entries []Entry) *Themes {
	t := &Themes{byMood: make(map[domain.MoodLabel]domain.Theme, len(entries)), def: def}
	for _, e := range entries {
		if e.Theme.IsZero() {
			continue
		}
		t.byMood[e.Mood] = e.Theme
	}
	return t
}

// Resolve returns the theme for label. MoodNone and unknown labels get the default.
func (t *Themes) Resolve(label domain.MoodLabel) domain.Theme {
	if th, ok := t.byMood[label]; ok {
		return th
	}
	return t.def
}

// Default returns the theme used when no mood is active.
func (t *Themes) Default() domain.Theme {
	return t.def
}

// All returns a copy of the registered themes keyed by mood.
func (t *Themes) All() map[domain.MoodLabel]domain.Theme {
	out := make(map[domain.MoodLabel]domain.Theme, len(t.byMood))
	for k, v := range t.byMood {
		out[k] = v
	}
	return out
}
