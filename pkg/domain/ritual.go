package domain

import (
	"fmt"
	"strings"
)

// Ritual is an immutable, titled sequence of instructional steps.
// Rituals are shared by pointer from the catalog; callers must not modify Steps.
type Ritual struct {
	Title string   `json:"title" yaml:"title"`
	Steps []string `json:"steps" yaml:"steps"`
}

// Len returns the number of steps.
func (r *Ritual) Len() int {
	return len(r.Steps)
}

// Step returns the step at index i, or "" when out of range.
func (r *Ritual) Step(i int) string {
	if i < 0 || i >= len(r.Steps) {
		return ""
	}
	return r.Steps[i]
}

// IsLast reports whether i is the final step index.
func (r *Ritual) IsLast(i int) bool {
	return i == len(r.Steps)-1
}

// Validate checks that the ritual has a title and at least one non-blank step.
func (r *Ritual) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil ritual", ErrInvalidRitual)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidRitual)
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("%w: %q has no steps", ErrInvalidRitual, r.Title)
	}
	for i, s := range r.Steps {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %q step %d is blank", ErrInvalidRitual, r.Title, i)
		}
	}
	return nil
}

// Theme is the presentational palette for a mood.
type Theme struct {
	Name       string `json:"name" yaml:"name"`
	Background string `json:"background" yaml:"background"`
	Foreground string `json:"foreground" yaml:"foreground"`
}

// IsZero reports whether no field is set.
func (t Theme) IsZero() bool {
	return t == Theme{}
}
