package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the MoodScape banner to w, shaded through the mood palette.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  __  __                 _ ____                       ", "#818cf8"},
		{" |  \\/  | ___   ___   __| / ___|  ___ __ _ _ __   ___ ", "#a78bfa"},
		{" | |\\/| |/ _ \\ / _ \\ / _` \\___ \\ / __/ _` | '_ \\ / _ \\", "#2dd4bf"},
		{" | |  | | (_) | (_) | (_| |___) | (_| (_| | |_) |  __/", "#fb923c"},
		{" |_|  |_|\\___/ \\___/ \\__,_|____/ \\___\\__,_| .__/ \\___|", "#94a3b8"},
		{"                                          |_|          ", "#94a3b8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
