package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Styler colors CLI output. Colors are dropped when the output is not a terminal.
type Styler struct {
	out *termenv.Output
}

// NewStyler inspects w to pick a color profile.
func NewStyler(w io.Writer) *Styler {
	if !IsTerminal(w) {
		return &Styler{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
	}
	return &Styler{out: termenv.NewOutput(w)}
}

func (s *Styler) Accepted(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#22c55e")).Bold().String()
}

func (s *Styler) Rejected(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#ef4444")).Bold().String()
}

func (s *Styler) Warning(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#f59e0b")).String()
}

func (s *Styler) Muted(text string) string {
	return s.out.String(text).Faint().String()
}
