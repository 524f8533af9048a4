// Package ansi holds the SGR escape table and the visual width measurer
// shared by the markup engine and the tree layout engine.
//
// Every code is a standard Select Graphic Rendition sequence of the form
// ESC [ n m. The table is fixed; there is no capability negotiation and no
// 256-color or truecolor support.
package ansi

// Foreground colors.
const (
	FgBlack   = "\x1b[30m"
	FgRed     = "\x1b[31m"
	FgGreen   = "\x1b[32m"
	FgYellow  = "\x1b[33m"
	FgBlue    = "\x1b[34m"
	FgMagenta = "\x1b[35m"
	FgCyan    = "\x1b[36m"
	FgWhite   = "\x1b[37m"
)

// Background colors.
const (
	BgBlack   = "\x1b[40m"
	BgRed     = "\x1b[41m"
	BgGreen   = "\x1b[42m"
	BgYellow  = "\x1b[43m"
	BgBlue    = "\x1b[44m"
	BgMagenta = "\x1b[45m"
	BgCyan    = "\x1b[46m"
	BgWhite   = "\x1b[47m"
)

// Text styles.
const (
	Bold       = "\x1b[1m"
	Faded      = "\x1b[2m"
	Italic     = "\x1b[3m"
	Underline  = "\x1b[4m"
	Blinking   = "\x1b[5m"
	CrossedOut = "\x1b[9m"
)

// Reset clears every color and style.
const Reset = "\x1b[0m"

// Code returns the SGR sequence for a canonical lowercase style name, or ""
// when the name is not in the table. Callers fold case before lookup.
func Code(name string) string {
	switch name {
	case "red":
		return FgRed
	case "green":
		return FgGreen
	case "blue":
		return FgBlue
	case "yellow":
		return FgYellow
	case "magenta":
		return FgMagenta
	case "cyan":
		return FgCyan
	case "white":
		return FgWhite
	case "black":
		return FgBlack
	case "bold":
		return Bold
	case "italic":
		return Italic
	case "underline":
		return Underline
	case "faded":
		return Faded
	case "blinking":
		return Blinking
	case "crossedout":
		return CrossedOut
	case "bg-red":
		return BgRed
	case "bg-green":
		return BgGreen
	case "bg-blue":
		return BgBlue
	case "bg-yellow":
		return BgYellow
	case "bg-magenta":
		return BgMagenta
	case "bg-cyan":
		return BgCyan
	case "bg-white":
		return BgWhite
	case "bg-black":
		return BgBlack
	default:
		return ""
	}
}

// Names lists every recognized style name: foreground colors, background
// colors, then text styles.
func Names() []string {
	return []string{
		"red", "green", "blue", "yellow", "magenta", "cyan", "white", "black",
		"bg-red", "bg-green", "bg-blue", "bg-yellow", "bg-magenta", "bg-cyan", "bg-white", "bg-black",
		"bold", "italic", "underline", "faded", "blinking", "crossedout",
	}
}
