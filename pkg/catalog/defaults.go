package catalog

import "github.com/aretw0/moodscape/pkg/domain"

// DefaultTheme is used on the input screen.
var DefaultTheme = domain.Theme{Name: "slate-light", Background: "#f1f5f9", Foreground: "#0f172a"}

// DefaultEntries returns the built-in rituals and themes.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Mood: domain.MoodAnxious,
			Ritual: domain.Ritual{
				Title: "4-7-8 Breathing",
				Steps: []string{"Sit comfortably.", "Inhale through nose (4s).", "Hold breath (7s).", "Exhale through mouth (8s).", "Repeat 4 times."},
			},
			Theme: domain.Theme{Name: "indigo", Background: "#312e81", Foreground: "#eef2ff"},
		},
		{
			Mood: domain.MoodOverwhelmed,
			Ritual: domain.Ritual{
				Title: "5-4-3-2-1 Grounding",
				Steps: []string{"Look around you.", "Name 5 things you see.", "Name 4 things you can feel.", "Name 3 sounds you hear.", "Name 2 smells.", "Name 1 thing you taste."},
			},
			Theme: domain.Theme{Name: "slate", Background: "#1e293b", Foreground: "#f8fafc"},
		},
		{
			Mood: domain.MoodLow,
			Ritual: domain.Ritual{
				Title: "The Sunlight Viz",
				Steps: []string{"Close your eyes.", "Imagine a warm golden light.", "Feel it hitting your forehead.", "Let it fill your chest.", "Sit in the warmth for 30s."},
			},
			Theme: domain.Theme{Name: "stone", Background: "#292524", Foreground: "#f5f5f4"},
		},
		{
			Mood: domain.MoodSad,
			Ritual: domain.Ritual{
				Title: "Hand on Heart",
				Steps: []string{"Place your hand on your heart.", "Feel its beat.", "Take a deep breath.", "Say: 'I am doing my best.'", "Say: 'I am safe.'"},
			},
			Theme: domain.Theme{Name: "gray", Background: "#111827", Foreground: "#e5e7eb"},
		},
		{
			Mood: domain.MoodEnergized,
			Ritual: domain.Ritual{
				Title: "Channel the Fire",
				Steps: []string{"Stand up.", "Shake your arms out.", "Pick ONE big task.", "Set a timer for 20 mins.", "GO."},
			},
			Theme: domain.Theme{Name: "orange", Background: "#f97316", Foreground: "#ffffff"},
		},
		{
			Mood: domain.MoodCalm,
			Ritual: domain.Ritual{
				Title: "Gratitude Anchor",
				Steps: []string{"You are in a good place.", "Think of one person you love.", "Send them a mental 'Thank You'.", "Smile."},
			},
			Theme: domain.Theme{Name: "teal", Background: "#0f766e", Foreground: "#f0fdfa"},
		},
		{
			Mood: domain.MoodFocused,
			Ritual: domain.Ritual{
				Title: "Deep Work Entry",
				Steps: []string{"Put phone in another room.", "Close all tabs except one.", "Write down your single goal.", "Start."},
			},
			Theme: domain.Theme{Name: "violet", Background: "#4c1d95", Foreground: "#f5f3ff"},
		},
	}
}

// Default builds the tables from DefaultEntries.
func Default() (*Rituals, *Themes) {
	entries := DefaultEntries()
	rituals, err := NewRituals(entries)
	if err != nil {
		// DefaultEntries is static content; a failure here is a programming error.
		panic(err)
	}
	return rituals, NewThemes(DefaultTheme, entries)
}
