package tree

import (
	"strconv"
	"strings"

	"github.com/dkoosis/prettyterm/pkg/ansi"
)

// FormatTableLine boxes content between borders and pads it with spaces so
// the whole line, indentation included, is exactly the terminal width.
func (b Branch) FormatTableLine(content string) string {
	pad := b.budget(ansi.VisualWidth(content) + 4 + b.indentWidth())

	var sb strings.Builder
	sb.WriteString(b.FormatIndent())
	sb.WriteString("│ ")
	sb.WriteString(content)
	sb.WriteByte(' ')
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString("│")
	return sb.String()
}

// MaxContentWidth is the column budget FormatTableMultiLine wraps to.
func (b Branch) MaxContentWidth() int {
	return b.budget(3 + b.indentWidth())
}

// FormatTableMultiLine word-wraps text to MaxContentWidth and boxes every
// resulting line with FormatTableLine. Each source line is trimmed first;
// lines that are blank after trimming produce no output. A word longer
// than the budget is broken at the budget.
//
// Escape codes take no room and are never split. A row that ends inside a
// style is closed with a reset, and the next row reopens the style, so the
// box borders stay unstyled.
func (b Branch) FormatTableMultiLine(text string) string {
	limit := b.MaxContentWidth()
	if limit < 1 {
		limit = 1
	}

	var (
		lines  []string
		segs   []string
		active string
	)
	for _, src := range strings.Split(text, "\n") {
		segs, active = wrap(strings.TrimSpace(src), limit, active)
		for _, seg := range segs {
			lines = append(lines, b.FormatTableLine(seg))
		}
	}
	return strings.Join(lines, "\n")
}

// wrap breaks line into rows of at most limit visible runes, splitting at
// the last space inside each window. Spaces at a break are dropped. active
// holds the style codes open before line starts; the codes open after it
// are returned.
func wrap(line string, limit int, active string) ([]string, string) {
	cells, tail := ansi.Cells(line)

	// open[i] is the style in effect while cells[i] is printed.
	open := make([]string, len(cells))
	for i, c := range cells {
		active = applyCodes(active, c.Codes)
		open[i] = active
	}
	final := applyCodes(active, tail)

	var rows []string
	emit := func(from, to int) {
		var sb strings.Builder
		sb.WriteString(open[from])
		sb.WriteRune(cells[from].Rune)
		for _, c := range cells[from+1 : to] {
			for _, code := range c.Codes {
				sb.WriteString(code)
			}
			sb.WriteRune(c.Rune)
		}
		end := open[to-1]
		if to == len(cells) {
			for _, code := range tail {
				sb.WriteString(code)
			}
			end = final
		}
		if end != "" {
			sb.WriteString(ansi.Reset)
		}
		rows = append(rows, sb.String())
	}

	pos := 0
	for {
		for pos < len(cells) && cells[pos].Rune == ' ' {
			pos++
		}
		if pos >= len(cells) {
			break
		}
		if len(cells)-pos <= limit {
			emit(pos, len(cells))
			break
		}

		end := pos + limit
		brk := -1
		for i := end; i > pos; i-- {
			if cells[i].Rune == ' ' {
				brk = i
				break
			}
		}

		if brk < 0 {
			emit(pos, end)
			pos = end
			continue
		}
		to := brk
		for to > pos && cells[to-1].Rune == ' ' {
			to--
		}
		emit(pos, to)
		pos = brk + 1
	}
	return rows, final
}

// applyCodes returns the open style after codes are written on top of
// active.
func applyCodes(active string, codes []string) string {
	for _, code := range codes {
		if ansi.IsReset(code) {
			active = ""
			continue
		}
		active += code
	}
	return active
}

// FormatCodeLine right-aligns n in a gutter of the given width and appends
// the code after a separator. Numbers wider than the gutter are kept whole.
func (b Branch) FormatCodeLine(n int, code string, gutter int) string {
	num := strconv.Itoa(n)
	return strings.Repeat(" ", saturatingSub(gutter, len(num))) + num + "| " + code
}

// FormatTableCodeMultiLine numbers every line of block starting at first
// and boxes each one to the terminal width. The gutter is as wide as the
// last line number.
//
// Rows pad with Width - (3*IndentLevel + width + 4) and end in " │", so they
// are exactly as wide as FormatTableHeader and FormatTableFooter. Padding
// with +6 instead, as older renderers of this layout did, makes every row
// two columns narrower than its borders.
func (b Branch) FormatTableCodeMultiLine(first int, block string) string {
	if block == "" {
		return ""
	}
	codeLines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	gutter := len(strconv.Itoa(first + len(codeLines) - 1))
	indent := b.FormatIndent()

	out := make([]string, 0, len(codeLines))
	for i, code := range codeLines {
		formatted := b.FormatCodeLine(first+i, strings.TrimSuffix(code, "\r"), gutter)
		pad := b.budget(b.indentWidth() + ansi.VisualWidth(formatted) + 4)
		out = append(out, indent+"│ "+formatted+strings.Repeat(" ", pad)+" │")
	}
	return strings.Join(out, "\n")
}

// FormatTableHeader draws the top border with title embedded, filled with
// rules to the terminal width.
func (b Branch) FormatTableHeader(title string) string {
	fill := b.budget(ansi.VisualWidth(title) + 5 + b.indentWidth())
	return b.FormatBranchLine(title, "├─ ") + strings.Repeat("─", fill) + " ╮"
}

// FormatTableFooter draws the bottom border.
func (b Branch) FormatTableFooter() string {
	fill := b.budget(3 + b.indentWidth())
	return b.FormatBranchLine("", "├─") + strings.Repeat("─", fill) + "╯"
}
