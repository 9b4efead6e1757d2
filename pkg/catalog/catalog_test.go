package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RegisteredReturnsSameRitual(t *testing.T) {
	rituals, _ := catalog.Default()

	for _, label := range rituals.Labels() {
		want, ok := rituals.Lookup(label)
		require.True(t, ok)
		assert.Same(t, want, rituals.Resolve(label), "label %s", label)
	}
}

func TestResolve_UnknownFallsBackToCalm(t *testing.T) {
	rituals, _ := catalog.Default()
	calm := rituals.Resolve(domain.MoodCalm)

	for _, label := range []domain.MoodLabel{"Ecstatic", "", "calm", "ANXIOUS"} {
		assert.Same(t, calm, rituals.Resolve(label), "label %q", label)
	}
	assert.Equal(t, "Gratitude Anchor", calm.Title)
}

func TestDefault_AnxiousRitual(t *testing.T) {
	rituals, _ := catalog.Default()
	r := rituals.Resolve(domain.MoodAnxious)

	assert.Equal(t, "4-7-8 Breathing", r.Title)
	assert.Equal(t, 5, r.Len())
}

func TestNewRituals_RequiresFallback(t *testing.T) {
	_, err := catalog.NewRituals([]catalog.Entry{
		{Mood: domain.MoodSad, Ritual: domain.Ritual{Title: "t", Steps: []string{"s"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrMissingFallback))
}

func TestNewRituals_Validation(t *testing.T) {
	calm := catalog.Entry{Mood: domain.MoodCalm, Ritual: domain.Ritual{Title: "c", Steps: []string{"s"}}}

	tests := []struct {
		name  string
		entry catalog.Entry
	}{
		{"No Mood", catalog.Entry{Ritual: domain.Ritual{Title: "t", Steps: []string{"s"}}}},
		{"No Title", catalog.Entry{Mood: "Sad", Ritual: domain.Ritual{Steps: []string{"s"}}}},
		{"No Steps", catalog.Entry{Mood: "Sad", Ritual: domain.Ritual{Title: "t"}}},
		{"Blank Step", catalog.Entry{Mood: "Sad", Ritual: domain.Ritual{Title: "t", Steps: []string{"s", "  "}}}},
		{"Duplicate", calm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewRituals([]catalog.Entry{calm, tt.entry})
			assert.True(t, errors.Is(err, domain.ErrInvalidRitual), "got %v", err)
		})
	}
}

func TestNewRituals_CopiesSteps(t *testing.T) {
	steps := []string{"one", "two"}
	rituals, err := catalog.NewRituals([]catalog.Entry{
		{Mood: domain.MoodCalm, Ritual: domain.Ritual{Title: "c", Steps: steps}},
	})
	require.NoError(t, err)

	steps[0] = "mutated"
	assert.Equal(t, "one", rituals.Resolve(domain.MoodCalm).Step(0))
}

func TestThemes_Resolve(t *testing.T) {
	_, themes := catalog.Default()

	assert.Equal(t, "indigo", themes.Resolve(domain.MoodAnxious).Name)
	assert.Equal(t, catalog.DefaultTheme, themes.Resolve(domain.MoodNone))
	assert.Equal(t, catalog.DefaultTheme, themes.Resolve("Ecstatic"))
	assert.Len(t, themes.All(), 7)
}

func TestDecode(t *testing.T) {
	doc := `
default_theme: {name: paper, background: "#ffffff", foreground: "#000000"}
rituals:
  - mood: Calm
    title: Box Breathing
    steps: [Inhale 4s., Hold 4s., Exhale 4s., Hold 4s.]
    theme: {name: teal, background: "#0f766e", foreground: "#f0fdfa"}
  - mood: " Sad "
    title: Hand on Heart
    steps: [Place your hand on your heart.]
`
	rituals, themes, err := catalog.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []domain.MoodLabel{"Calm", "Sad"}, rituals.Labels())
	assert.Equal(t, "Box Breathing", rituals.Resolve("Unknown").Title)
	assert.Equal(t, "paper", themes.Resolve("Sad").Name)
	assert.Equal(t, "teal", themes.Resolve("Calm").Name)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	doc := "rituals:\n  - mood: Calm\n    title: c\n    steps: [s]\n    color: red\n"
	_, _, err := catalog.Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecode_MissingFallback(t *testing.T) {
	doc := "rituals:\n  - mood: Sad\n    title: s\n    steps: [s]\n"
	_, _, err := catalog.Decode(strings.NewReader(doc))
	assert.True(t, errors.Is(err, domain.ErrMissingFallback))
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	rituals, themes, err := catalog.Load("")
	require.NoError(t, err)
	assert.Len(t, rituals.Labels(), 7)
	assert.Equal(t, catalog.DefaultTheme, themes.Default())
}
