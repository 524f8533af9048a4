package ansi

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const esc = '\x1b'

// VisualWidth returns the number of terminal columns s occupies for layout
// purposes. An ESC followed by '[' starts a zero-width unit that runs through
// the next 'm' inclusive; every other rune counts as one column.
//
// This counts Unicode scalar values, not grapheme clusters: wide CJK runes
// and combining marks each count as one. The layout engine relies on this
// exact measure, so do not swap in a cell-width implementation here.
func VisualWidth(s string) int {
	width := 0
	eachVisible(s, func(rune) { width++ })
	return width
}

// StripCodes removes every zero-width unit VisualWidth skips, so that
// VisualWidth(s) == utf8.RuneCountInString(StripCodes(s)).
func StripCodes(s string) string {
	if !strings.ContainsRune(s, esc) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	eachVisible(s, func(r rune) { b.WriteRune(r) })
	return b.String()
}

// eachVisible calls fn for every rune of s outside an ESC '[' ... 'm' unit.
// An unterminated unit swallows the rest of the string.
func eachVisible(s string, fn func(rune)) {
	scan(s, nil, fn)
}

// scan walks s once, passing every escape unit to code (when non-nil) and
// every other rune to visible, in order.
func scan(s string, code func(string), visible func(rune)) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == esc && i+1 < len(runes) && runes[i+1] == '[' {
			start := i
			i++
			for i+1 < len(runes) {
				i++
				if runes[i] == 'm' {
					break
				}
			}
			if code != nil {
				code(string(runes[start : i+1]))
			}
			continue
		}
		visible(runes[i])
	}
}

// Cell is one visible rune and the escape units written just before it.
type Cell struct {
	Codes []string
	Rune  rune
}

// Cells splits s into visible cells. Escape units after the last visible
// rune are returned as tail. Concatenating every cell's codes and rune
// followed by tail reproduces s.
func Cells(s string) (cells []Cell, tail []string) {
	var pending []string
	scan(s,
		func(c string) { pending = append(pending, c) },
		func(r rune) {
			cells = append(cells, Cell{Codes: pending, Rune: r})
			pending = nil
		})
	return cells, pending
}

// IsReset reports whether code clears every attribute.
func IsReset(code string) bool {
	return code == Reset || code == "\x1b[m"
}

// CellWidth returns the rendered cell width of s once escape codes are
// removed, counting wide runes as two cells. Diagnostic only: the layout
// engine pads with VisualWidth.
func CellWidth(s string) int {
	return runewidth.StringWidth(StripCodes(s))
}
