package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// It returns nil when f is not a terminal, so redirected output stays plain.
func NewRenderer(f *os.File) func(string) (string, error) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(out, "\n"), nil
	}
}
