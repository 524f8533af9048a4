// Package markup expands inline style tags into ANSI SGR sequences.
//
// Tags look like <red>, <red|bold> or <bg-blue|underline> and are closed by
// any tag starting with '/'. The body of a closing tag is ignored: </x>
// always closes the innermost open tag. Tag names are case-insensitive and
// unknown names are dropped silently.
//
// There is no escape for a literal '<'. Every '<' begins a tag and the tag
// body runs to the next '>' (or to the end of the input).
//
// On every close the engine emits a full reset and then replays every tag
// that is still open, outermost first.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dkoosis/prettyterm/pkg/ansi"
)

// token is one tag occurrence.
type token struct {
	closing bool
	names   []string
}

// styleStack holds the names of every open tag, outermost at index 0.
type styleStack [][]string

func (s *styleStack) push(names []string) { *s = append(*s, names) }

func (s *styleStack) pop() bool {
	if len(*s) == 0 {
		return false
	}
	*s = (*s)[:len(*s)-1]
	return true
}

// Expand replaces style tags in text with ANSI codes.
//
//	Expand("<red>Hello</red>") == ansi.FgRed + "Hello" + ansi.Reset
//
// Unbalanced input is tolerated: a close with nothing open produces no
// output, and tags still open at the end get one trailing reset.
func Expand(text string) string {
	return render(text, true)
}

// Expandf formats according to a format specifier and expands the result.
// Arguments are interpolated first, so tags inside arguments are honored.
func Expandf(format string, args ...any) string {
	return Expand(fmt.Sprintf(format, args...))
}

// Strip removes style tags without emitting any codes. It consumes exactly
// the same tags Expand does, for monochrome output.
func Strip(text string) string {
	return render(text, false)
}

func render(text string, color bool) string {
	var out strings.Builder
	out.Grow(len(text))

	fold := cases.Fold()
	var stack styleStack
	emit := func(names []string) {
		if !color {
			return
		}
		for _, name := range names {
			out.WriteString(ansi.Code(fold.String(name)))
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '<' {
			out.WriteRune(runes[i])
			continue
		}

		var tok token
		tok, i = readTag(runes, i+1)

		if tok.closing {
			if stack.pop() {
				if color {
					out.WriteString(ansi.Reset)
				}
				for _, names := range stack {
					emit(names)
				}
			}
			continue
		}

		stack.push(tok.names)
		emit(tok.names)
	}

	if len(stack) > 0 && color {
		out.WriteString(ansi.Reset)
	}
	return out.String()
}

// readTag parses a tag body starting just after '<'. It returns the token
// and the index of the last rune consumed (the '>' when present).
func readTag(runes []rune, start int) (token, int) {
	var tok token
	i := start
	if i < len(runes) && runes[i] == '/' {
		tok.closing = true
		i++
	}

	bodyStart := i
	for i < len(runes) && runes[i] != '>' {
		i++
	}
	body := string(runes[bodyStart:i])
	if !tok.closing {
		tok.names = strings.Split(body, "|")
	}

	if i >= len(runes) {
		return tok, len(runes) - 1
	}
	return tok, i
}
