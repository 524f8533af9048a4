package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/prettyterm/pkg/status"
	"github.com/dkoosis/prettyterm/pkg/theme"
)

var testComponent = Component{File: "file.go", Func: "run", Dir: "/src"}

func TestLogTime(t *testing.T) {
	lt := NewLogTime(14, 30, 45)
	assert.Equal(t, "14:30:45", lt.String())
	assert.Equal(t, "9:5:7", NewLogTime(9, 5, 7).String())

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, NewLogTime(3, 4, 5), TimeOf(at))

	now := Now()
	assert.Less(t, now.Hour, 24)
	assert.Less(t, now.Minute, 60)
	assert.Less(t, now.Second, 60)
}

func TestLogFormat(t *testing.T) {
	rec := Log{
		Status:    status.Warn,
		Message:   "disk almost full",
		Component: testComponent,
		Time:      NewLogTime(10, 20, 30),
	}

	tests := []struct {
		style PrintStyle
		want  string
	}{
		{Tiny, "Warning: disk almost full | from file.go-func:run, time is 10:20:30"},
		{Flat, "Warning: disk almost full | file file.go | time 10:20:30"},
		{Full, "[Warning|10:20:30][/src/file.go-run]: disk almost full"},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, rec.Format(tt.style))
		})
	}
}

func TestLogRender(t *testing.T) {
	rec := Log{Status: status.OK, Message: "built", Component: testComponent, Time: NewLogTime(1, 2, 3)}
	display := theme.NewDisplayConfig(theme.DefaultColorTheme(), theme.DefaultIconsTheme(), 80, 24)

	got := rec.Render(Flat, display)

	assert.True(t, strings.HasPrefix(got, "✓ "))
	assert.Contains(t, got, "Ok")
	assert.True(t, strings.HasSuffix(got, ": built | file file.go | time 1:2:3"))

	display.Icons = theme.IconsTheme{}
	assert.NotContains(t, rec.Render(Flat, display), "✓")
}

func TestParsePrintStyle(t *testing.T) {
	for _, s := range []PrintStyle{Tiny, Flat, Full} {
		got, err := ParsePrintStyle(strings.ToUpper(s.String()))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParsePrintStyle("fancy")
	assert.Error(t, err)
}

func TestLogger_Add(t *testing.T) {
	lg := New(Now(), true)
	assert.Empty(t, lg.Logs())
	assert.Nil(t, lg.Destroyed)
	assert.Equal(t, Tiny, lg.Style)

	at := NewLogTime(8, 0, 0)
	line, ok := lg.Add("test log", testComponent, status.Info, &at)

	require.True(t, ok)
	assert.Equal(t, "Info: test log | from file.go-func:run, time is 8:0:0", line)
	require.Len(t, lg.Logs(), 1)
	assert.Equal(t, at, lg.Logs()[0].Time)
}

func TestLogger_AddNotPrintable(t *testing.T) {
	lg := New(Now(), false)
	for i := 0; i < 5; i++ {
		line, ok := lg.Add("entry", testComponent, status.OK, nil)
		assert.False(t, ok)
		assert.Empty(t, line)
	}
	assert.Len(t, lg.Logs(), 5)
}

func TestLogger_LogsIsACopy(t *testing.T) {
	lg := New(Now(), false)
	lg.Add("a", testComponent, status.OK, nil)

	logs := lg.Logs()
	logs[0].Message = "changed"

	assert.Equal(t, "a", lg.Logs()[0].Message)
}

func TestLogger_DestroyWithoutFile(t *testing.T) {
	lg := New(Now(), false)
	lg.Add("test", testComponent, status.OK, nil)
	path := filepath.Join(t.TempDir(), "never.log")

	require.NoError(t, lg.Destroy(path, false, false))

	assert.NotNil(t, lg.Destroyed)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLogger_DestroyWritesFile(t *testing.T) {
	lg := New(Now(), false)
	lg.Style = Full
	at := NewLogTime(12, 0, 1)
	lg.Add("Starting tokenization", Component{File: "lexer.go", Func: "Tokenize", Dir: "frontend"}, status.Info, &at)
	lg.Add("AST built", Component{File: "parser.go", Func: "Parse", Dir: "frontend"}, status.OK, &at)

	path := filepath.Join(t.TempDir(), "build.log")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one"), 0o600))

	require.NoError(t, lg.Destroy(path, true, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[Info|12:0:1][frontend/lexer.go-Tokenize]: Starting tokenization\n"+
			"[Ok|12:0:1][frontend/parser.go-Parse]: AST built",
		string(data))
}

func TestLogger_DestroyPrints(t *testing.T) {
	lg := New(Now(), false)
	var buf bytes.Buffer
	lg.SetOutput(&buf)
	at := NewLogTime(1, 1, 1)
	lg.Add("one", testComponent, status.OK, &at)
	lg.Add("two", testComponent, status.Error, &at)

	require.NoError(t, lg.Destroy("", false, true))

	assert.Equal(t, strings.Join(lg.Lines(), "\n")+"\n", buf.String())
	assert.Contains(t, buf.String(), "Error: two")
}

func TestLogger_DestroyReportsPersistError(t *testing.T) {
	lg := New(Now(), false)
	lg.Add("x", testComponent, status.OK, nil)
	path := filepath.Join(t.TempDir(), "missing-dir", "out.log")

	err := lg.Destroy(path, true, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersist))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), path)
}

func TestLogger_DestroyReturnsErrorsWithoutLogging(t *testing.T) {
	var buf bytes.Buffer
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	lg := New(Now(), false)
	lg.Add("x", testComponent, status.OK, nil)
	dir := t.TempDir()

	require.Error(t, lg.Destroy(filepath.Join(dir, "missing-dir", "out.log"), true, false))
	require.NoError(t, lg.Destroy(filepath.Join(dir, "out.log"), true, false))

	assert.Empty(t, buf.String())
}

func TestLogger_ManyRecords(t *testing.T) {
	lg := New(Now(), false)
	for i := 0; i < 1000; i++ {
		lg.Add("entry", testComponent, status.Info, nil)
	}
	assert.Len(t, lg.Logs(), 1000)
	assert.Len(t, lg.Lines(), 1000)
}
