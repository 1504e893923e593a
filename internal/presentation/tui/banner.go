package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the venvstrap banner, colored when the terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	title := out.String(" venvstrap ").Bold().Foreground(out.Color("#818cf8"))
	sub := out.String("python virtual environment bootstrap").Foreground(out.Color("#c084fc"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s v%s\n", title, version)
	fmt.Fprintf(w, " %s\n", sub)
	fmt.Fprintln(w)
}
