// Package logger buffers log records in memory, formats them in one of
// three presets and persists them to a file when the logger is destroyed.
//
// A Logger is not safe for concurrent use.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dkoosis/prettyterm/pkg/status"
	"github.com/dkoosis/prettyterm/pkg/theme"
)

// ErrPersist is wrapped by every error returned while writing logs to disk.
var ErrPersist = errors.New("cannot persist logs")

// LogTime is the wall-clock time a record was registered, to the second.
type LogTime struct {
	Hour   int
	Minute int
	Second int
}

// NewLogTime builds a LogTime from explicit values.
func NewLogTime(hour, minute, second int) LogTime {
	return LogTime{Hour: hour, Minute: minute, Second: second}
}

// TimeOf truncates t to a LogTime in t's location.
func TimeOf(t time.Time) LogTime {
	return LogTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Now returns the current local time.
func Now() LogTime {
	return TimeOf(time.Now())
}

// String formats the time as h:m:s without zero padding.
func (t LogTime) String() string {
	return fmt.Sprintf("%d:%d:%d", t.Hour, t.Minute, t.Second)
}

// Component identifies where a record came from.
type Component struct {
	File string
	Func string
	Dir  string
}

// PrintStyle selects how a record is rendered to a single line.
type PrintStyle int

const (
	// Tiny is compact, naming the file and function.
	Tiny PrintStyle = iota
	// Flat uses words instead of symbols and omits the function.
	Flat
	// Full is fully qualified with directory, file and function.
	Full
)

// String returns the configuration name of the style.
func (p PrintStyle) String() string {
	switch p {
	case Flat:
		return "flat"
	case Full:
		return "full"
	default:
		return "tiny"
	}
}

// ParsePrintStyle maps a configuration name to a PrintStyle.
func ParsePrintStyle(name string) (PrintStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tiny", "":
		return Tiny, nil
	case "flat":
		return Flat, nil
	case "full":
		return Full, nil
	default:
		return Tiny, fmt.Errorf("unknown log style %q", name)
	}
}

// Log is one record.
type Log struct {
	Status    status.Status
	Message   string
	Component Component
	Time      LogTime
}

// Format renders the record as one line.
func (l Log) Format(style PrintStyle) string {
	return l.format(style, l.Status.String())
}

// Render is Format with the status token colored and prefixed by its icon
// from the display theme.
func (l Log) Render(style PrintStyle, display theme.DisplayConfig) string {
	token := display.Colors.StatusStyle(l.Status).Render(l.Status.String())
	if icon := display.Icons.ForStatus(l.Status); icon != "" {
		token = icon + " " + token
	}
	return l.format(style, token)
}

func (l Log) format(style PrintStyle, st string) string {
	c := l.Component
	switch style {
	case Flat:
		return fmt.Sprintf("%s: %s | file %s | time %s", st, l.Message, c.File, l.Time)
	case Full:
		return fmt.Sprintf("[%s|%s][%s/%s-%s]: %s", st, l.Time, c.Dir, c.File, c.Func, l.Message)
	default:
		return fmt.Sprintf("%s: %s | from %s-func:%s, time is %s", st, l.Message, c.File, c.Func, l.Time)
	}
}

// Logger collects records until Destroy.
type Logger struct {
	Style     PrintStyle
	Created   LogTime
	Destroyed *LogTime
	Printable bool

	logs []Log
	out  io.Writer
}

// New creates an empty Logger using the Tiny style. When printable is true,
// Add returns each formatted line for the caller to show.
func New(created LogTime, printable bool) *Logger {
	return &Logger{
		Style:     Tiny,
		Created:   created,
		Printable: printable,
		out:       os.Stdout,
	}
}

// SetOutput changes where Destroy prints records.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Add records a message. A nil at means now. When the logger is printable
// the formatted line is returned with ok set.
func (l *Logger) Add(message string, comp Component, st status.Status, at *LogTime) (line string, ok bool) {
	t := Now()
	if at != nil {
		t = *at
	}
	rec := Log{Status: st, Message: message, Component: comp, Time: t}
	l.logs = append(l.logs, rec)

	if !l.Printable {
		return "", false
	}
	return rec.Format(l.Style), true
}

// Logs returns a copy of the buffered records.
func (l *Logger) Logs() []Log {
	out := make([]Log, len(l.logs))
	copy(out, l.logs)
	return out
}

// Lines formats every buffered record with the logger's style.
func (l *Logger) Lines() []string {
	lines := make([]string, 0, len(l.logs))
	for _, rec := range l.logs {
		lines = append(lines, rec.Format(l.Style))
	}
	return lines
}

// Destroy stamps the destruction time, optionally prints every record and
// optionally writes them to path, replacing any existing file. Write
// failures wrap ErrPersist.
func (l *Logger) Destroy(path string, writeToFile, printNow bool) error {
	now := Now()
	l.Destroyed = &now
	lines := l.Lines()

	if printNow {
		out := l.out
		if out == nil {
			out = os.Stdout
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}

	if !writeToFile {
		return nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersist, path, err)
	}
	return nil
}
