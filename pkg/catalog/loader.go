package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/moodscape/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a catalog file.
type File struct {
	Default *domain.Theme `json:"default_theme,omitempty" yaml:"default_theme,omitempty"`
	Rituals []FileEntry   `json:"rituals" yaml:"rituals"`
}

// FileEntry is one ritual in a catalog file.
type FileEntry struct {
	Mood  string        `json:"mood" yaml:"mood"`
	Title string        `json:"title" yaml:"title"`
	Steps []string      `json:"steps" yaml:"steps"`
	Theme *domain.Theme `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Decode parses a catalog document and builds both tables.
func Decode(r io.Reader) (*Rituals, *Themes, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse rituals: %w", err)
	}

	entries := make([]Entry, 0, len(f.Rituals))
	for _, fe := range f.Rituals {
		e := Entry{
			Mood:   domain.ParseMoodLabel(fe.Mood),
			Ritual: domain.Ritual{Title: fe.Title, Steps: fe.Steps},
		}
		if fe.Theme != nil {
			e.Theme = *fe.Theme
		}
		entries = append(entries, e)
	}

	rituals, err := NewRituals(entries)
	if err != nil {
		return nil, nil, err
	}
	def := DefaultTheme
	if f.Default != nil && !f.Default.IsZero() {
		def = *f.Default
	}
	return rituals, NewThemes(def, entries), nil
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Rituals, *Themes, error) {
	if path == "" {
		r, t := Default()
		return r, t, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rituals: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}
