package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// WriterIsTTY reports whether w is a terminal-backed *os.File
func WriterIsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && IsTTY(f.Fd())
}

// GetTerminalWidth returns the width of w, or 80 if it is not a terminal
func GetTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	return width
}

// IsColorEnabled returns true if color output should be enabled for w
func IsColorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return WriterIsTTY(w)
}
