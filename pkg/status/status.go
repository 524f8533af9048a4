// Package status defines the outcome kinds shared by the tree printer and
// the logger.
package status

import (
	"fmt"
	"strings"
)

// Status is the result of an operation.
type Status int

const (
	OK Status = iota
	Error
	Fatal
	Info
	Warn
)

// String returns the display name used in log lines.
func (s Status) String() string {
	switch s {
	case OK:
		return "Ok"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	case Info:
		return "Info"
	case Warn:
		return "Warning"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Parse accepts a display name or a short alias, case-insensitively.
func Parse(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok", "success":
		return OK, nil
	case "error", "err":
		return Error, nil
	case "fatal":
		return Fatal, nil
	case "info", "hint":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	default:
		return OK, fmt.Errorf("unknown status %q", s)
	}
}
