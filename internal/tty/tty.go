// Package tty answers the one question both the help renderer and the
// public introspection surface need: is stdout attached to a terminal,
// and if so, how wide is it (spec.md §4.6: "wrapped to terminal width
// when stdout is a tty").
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal's current column width, or fallback when
// stdout isn't a terminal or the size can't be determined.
func Width(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
