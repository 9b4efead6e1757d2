package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"gopkg.in/yaml.v3"
)

// PrintRituals writes the effective catalog to w as "table", "yaml" or "json".
// The yaml output can be fed back through rituals_path.
func PrintRituals(w io.Writer, rituals *catalog.Rituals, themes *catalog.Themes, format string) error {
	switch format {
	case "", "table":
		return printTable(w, rituals, themes)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(catalogFile(rituals, themes)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalogFile(rituals, themes))
	default:
		return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
	}
}

func printTable(w io.Writer, rituals *catalog.Rituals, themes *catalog.Themes) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MOOD\tRITUAL\tSTEPS\tTHEME")
	for _, label := range rituals.Labels() {
		r, _ := rituals.Lookup(label)
		name := themes.Resolve(label).Name
		if label == domain.FallbackMood {
			name += " (fallback)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", label, r.Title, r.Len(), name)
	}
	return tw.Flush()
}

func catalogFile(rituals *catalog.Rituals, themes *catalog.Themes) catalog.File {
	def := themes.Default()
	f := catalog.File{Default: &def}
	all := themes.All()
	for _, label := range rituals.Labels() {
		r, _ := rituals.Lookup(label)
		entry := catalog.FileEntry{Mood: string(label), Title: r.Title, Steps: r.Steps}
		if t, ok := all[label]; ok {
			entry.Theme = &t
		}
		f.Rituals = append(f.Rituals, entry)
	}
	return f
}
