// Package tree prints indented trees with boxed tables and numbered code
// listings, sized to the terminal width.
//
// A Branch is a value: EnterBranch returns a new Branch one level deeper and
// leaves the receiver untouched, so a caller may keep a parent and several
// children around at once. All widths are measured with ansi.VisualWidth,
// so content may already carry style codes from the markup package.
//
// Width arithmetic saturates at zero. Content wider than the terminal is
// never truncated; the line simply overflows.
package tree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dkoosis/prettyterm/pkg/status"
	"github.com/dkoosis/prettyterm/pkg/theme"
)

// BranchStyle selects how indentation is drawn.
type BranchStyle int

const (
	// Unicode draws a vertical guide per level and ├─ / ╰─ connectors.
	Unicode BranchStyle = iota
	// Indent pads with blanks and always uses the ╰─ connector.
	Indent
)

// levelWidth is the visual width of one indentation token.
const levelWidth = 3

// Token returns the string repeated once per indentation level.
func (s BranchStyle) Token() string {
	if s == Indent {
		return "   "
	}
	return "│  "
}

func (s BranchStyle) connector() string {
	if s == Indent {
		return "╰"
	}
	return "├"
}

// String returns the style name used in configuration.
func (s BranchStyle) String() string {
	if s == Indent {
		return "indent"
	}
	return "unicode"
}

// ParseBranchStyle maps a configuration name to a BranchStyle.
func ParseBranchStyle(name string) (BranchStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unicode", "":
		return Unicode, nil
	case "indent":
		return Indent, nil
	default:
		return Unicode, fmt.Errorf("unknown branch style %q", name)
	}
}

// Branch is one position in a printed tree.
type Branch struct {
	Name        string
	Message     string
	IndentLevel int
	Display     theme.DisplayConfig
	Style       BranchStyle

	out io.Writer
}

// New returns a root Branch at indent level 0 that prints to stdout.
func New(display theme.DisplayConfig, style BranchStyle) Branch {
	return Branch{
		Display: display,
		Style:   style,
		out:     os.Stdout,
	}
}

// WithOutput returns a copy of b that prints to w.
func (b Branch) WithOutput(w io.Writer) Branch {
	b.out = w
	return b
}

// EnterBranch prints a connector line introducing name at the current level
// and returns a Branch one level deeper. The line is written before the
// child is returned.
func (b Branch) EnterBranch(name string) Branch {
	out := b.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s%s─ %s\n", b.FormatIndent(), b.Style.connector(), name)

	child := b
	child.Name = name
	child.Message = ""
	child.IndentLevel = b.IndentLevel + 1
	return child
}

// LeaveBranch returns the closing line for this level. The status is
// accepted for future use and does not change the output.
func (b Branch) LeaveBranch(text string, _ status.Status) string {
	return b.FormatIndent() + "╰─ " + text
}

// FormatIndent repeats the style token once per indentation level.
func (b Branch) FormatIndent() string {
	if b.IndentLevel <= 0 {
		return ""
	}
	return strings.Repeat(b.Style.Token(), b.IndentLevel)
}

// FormatBranchLine returns text behind the indentation and prefix.
func (b Branch) FormatBranchLine(text, prefix string) string {
	return b.FormatIndent() + prefix + text
}

// indentWidth is the visual width of the indentation prefix.
func (b Branch) indentWidth() int {
	if b.IndentLevel <= 0 {
		return 0
	}
	return b.IndentLevel * levelWidth
}

// budget returns the terminal width minus used, floored at zero.
func (b Branch) budget(used int) int {
	return saturatingSub(b.Display.Width, used)
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
