// Package theme holds the read-only display settings consumed by the tree
// printer and the logger: color and icon bindings per status, and the
// terminal size every width computation is based on.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/prettyterm/pkg/ansi"
	"github.com/dkoosis/prettyterm/pkg/status"
)

// TerminalColor is one of the eight basic foreground colors.
type TerminalColor int

const (
	Black TerminalColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Code returns the SGR foreground sequence for c.
func (c TerminalColor) Code() string {
	return ansi.Code(c.Name())
}

// Name returns the lowercase color name, which is also its markup tag.
func (c TerminalColor) Name() string {
	if c < Black || c > White {
		return ""
	}
	return colorNames[c]
}

// Color returns c as a lipgloss ANSI color (indexes 0-7 match SGR 30-37).
func (c TerminalColor) Color() lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// ParseTerminalColor maps a color name to a TerminalColor.
func ParseTerminalColor(name string) (TerminalColor, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range colorNames {
		if cn == n {
			return TerminalColor(i), nil
		}
	}
	return Black, fmt.Errorf("unknown terminal color %q", name)
}

// ColorTheme binds a color to each kind of message.
type ColorTheme struct {
	Hint    TerminalColor
	Error   TerminalColor
	Success TerminalColor
	Warning TerminalColor
}

// DefaultColorTheme returns blue hints, red errors, green successes and
// yellow warnings.
func DefaultColorTheme() ColorTheme {
	return ColorTheme{
		Hint:    Blue,
		Error:   Red,
		Success: Green,
		Warning: Yellow,
	}
}

// ForStatus picks the color bound to st.
func (t ColorTheme) ForStatus(st status.Status) TerminalColor {
	switch st {
	case status.OK:
		return t.Success
	case status.Error, status.Fatal:
		return t.Error
	case status.Warn:
		return t.Warning
	default:
		return t.Hint
	}
}

// StatusStyle returns the lipgloss style used to render a status token.
// Fatal is rendered bold on top of the error color.
func (t ColorTheme) StatusStyle(st status.Status) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(t.ForStatus(st).Color())
	if st == status.Fatal {
		style = style.Bold(true)
	}
	return style
}

// IconsTheme binds an icon to each kind of message.
type IconsTheme struct {
	Hint    string
	Error   string
	Success string
	Warning string
}

// DefaultIconsTheme returns the Unicode icon set.
func DefaultIconsTheme() IconsTheme {
	return IconsTheme{
		Hint:    "🛈",
		Error:   "✗",
		Success: "✓",
		Warning: "⚠",
	}
}

// ASCIIIconsTheme returns bracketed words for terminals without Unicode
// symbols or when color is disabled.
func ASCIIIconsTheme() IconsTheme {
	return IconsTheme{
		Hint:    "[INFO]",
		Error:   "[FAIL]",
		Success: "[OK]",
		Warning: "[WARN]",
	}
}

// ForStatus picks the icon bound to st.
func (t IconsTheme) ForStatus(st status.Status) string {
	switch st {
	case status.OK:
		return t.Success
	case status.Error, status.Fatal:
		return t.Error
	case status.Warn:
		return t.Warning
	default:
		return t.Hint
	}
}

// DisplayConfig is the snapshot of display settings a tree or logger
// renders with. It is copied by value and never mutated by its consumers.
type DisplayConfig struct {
	Colors ColorTheme
	Icons  IconsTheme
	Width  int
	Height int
}

// NewDisplayConfig builds a DisplayConfig from explicit values.
func NewDisplayConfig(colors ColorTheme, icons IconsTheme, width, height int) DisplayConfig {
	return DisplayConfig{
		Colors: colors,
		Icons:  icons,
		Width:  width,
		Height: height,
	}
}

// DefaultDisplayConfig uses the default themes and the size of the
// terminal attached to stdout.
func DefaultDisplayConfig() DisplayConfig {
	w, h := TerminalSize()
	return NewDisplayConfig(DefaultColorTheme(), DefaultIconsTheme(), w, h)
}
