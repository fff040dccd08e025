package termio

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal determines whether or not the given file is attached to an
// interactive terminal (and, hence, whether escapes should be emitted).
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Highlight wraps some text in the given escape, unless colour is disabled.
func Highlight(text string, escape AnsiEscape, colour bool) string {
	if !colour {
		return text
	}
	//
	return escape.Build() + text + ResetAnsiEscape().Build()
}
