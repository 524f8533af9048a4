package theme

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Fallback terminal dimensions when the real size cannot be determined.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// TerminalSize returns the column and row count of the terminal on stdout.
func TerminalSize() (width, height int) {
	return SizeOf(os.Stdout)
}

// SizeOf returns the terminal dimensions for w. When w is not a terminal it
// falls back to the COLUMNS and LINES environment variables, then to 80x24.
func SizeOf(w io.Writer) (width, height int) {
	width, height = envSize("COLUMNS", DefaultWidth), envSize("LINES", DefaultHeight)
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

// IsTerminal reports whether stream (a reader or a writer) is a terminal.
func IsTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func envSize(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
