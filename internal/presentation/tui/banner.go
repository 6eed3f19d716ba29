package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the automata banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Teal to violet, one color per line.
	lines := []struct {
		text  string
		color string
	}{
		{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#2dd4bf"},
		{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#38bdf8"},
		{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#818cf8"},
		{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
