package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/prettyterm/pkg/ansi"
)

// isolate runs the test from an empty directory with no config file and no
// color or width overrides in the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, k := range []string{"PRETTYTERM_WIDTH", "PRETTYTERM_NO_COLOR", "NO_COLOR", "COLUMNS", "LINES"} {
		t.Setenv(k, "")
	}
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestStyle(t *testing.T) {
	isolate(t)

	code, out, _ := runCLI(t, "", "style", "<red>hi</red>", "there")
	require.Equal(t, 0, code)
	assert.Contains(t, out, ansi.Code("red"))
	assert.Equal(t, "hi there\n", ansi.StripCodes(out))

	code, out, _ = runCLI(t, "", "--no-color", "style", "<red>hi</red>")
	require.Equal(t, 0, code)
	assert.Equal(t, "hi\n", out)

	code, out, _ = runCLI(t, "<bold>piped</bold>\n", "style", "--strip")
	require.Equal(t, 0, code)
	assert.Equal(t, "piped\n", out)
}

func TestStyle_NoColorEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	_, out, _ := runCLI(t, "", "style", "<green>ok</green>")

	assert.Equal(t, "ok\n", out)
}

func TestWidth(t *testing.T) {
	isolate(t)

	_, out, _ := runCLI(t, "", "width", "\x1b[31mab\x1b[0m")
	assert.Equal(t, "2\n", out)

	_, out, _ = runCLI(t, "", "width", "--cells", "世界")
	assert.Equal(t, "2 4\n", out)
}

func TestBox(t *testing.T) {
	isolate(t)

	code, out, stderr := runCLI(t, "hello world\n", "--width", "20", "--no-color", "box", "--title", "T")

	require.Equal(t, 0, code, stderr)
	got := lines(out)
	assert.Equal(t, []string{
		"├─ T" + strings.Repeat("─", 14) + " ╮",
		"│ hello world      │",
		"├─" + strings.Repeat("─", 17) + "╯",
	}, got)
	for _, l := range got {
		assert.Equal(t, 20, ansi.VisualWidth(l), l)
	}
}

func TestBox_Wraps(t *testing.T) {
	isolate(t)

	_, out, _ := runCLI(t, "one two three four five six", "--width", "16", "--no-color", "box")

	got := lines(out)
	require.Len(t, got, 4)
	assert.Equal(t, "│ one two three │", got[1])
	assert.Equal(t, "│ four five six │", got[2])
}

func TestBox_StyledInputWraps(t *testing.T) {
	isolate(t)

	code, out, stderr := runCLI(t, "<red>"+strings.Repeat("a", 20)+"</red>", "--width", "20", "box")

	require.Equal(t, 0, code, stderr)
	got := lines(out)
	require.Len(t, got, 4)
	assert.Equal(t, "│ "+strings.Repeat("a", 17)+" │", ansi.StripCodes(got[1]))
	assert.Equal(t, "│ aaa"+strings.Repeat(" ", 14)+"│", ansi.StripCodes(got[2]))
	assert.True(t, strings.HasSuffix(got[1], ansi.Reset+" │"), got[1])
}

func TestCode(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o600))

	code, out, stderr := runCLI(t, "", "--width", "30", "--no-color", "code", path, "--start", "9")

	require.Equal(t, 0, code, stderr)
	got := lines(out)
	require.Len(t, got, 4)
	assert.True(t, strings.HasPrefix(got[0], "├─ main.go"))
	assert.True(t, strings.HasPrefix(got[1], "│  9| a"))
	assert.True(t, strings.HasPrefix(got[2], "│ 10| b"))
	for _, l := range got {
		assert.Equal(t, 30, ansi.VisualWidth(l), l)
	}
}

func TestCode_MissingFile(t *testing.T) {
	isolate(t)

	code, out, stderr := runCLI(t, "", "code", "missing.go")

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(stderr, "prettyterm: reading missing.go"), stderr)
}

func TestTree(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: demo\nsteps:\n  - build\n  - test\n"), 0o600))

	code, out, stderr := runCLI(t, "", "--no-color", "tree", path)

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{
		"├─ cfg.yaml",
		"│  ├─ name: demo",
		"│  ├─ steps",
		"│  │  ├─ [0]: build",
		"│  │  ├─ [1]: test",
		"╰─ 4 nodes",
	}, lines(out))
}

func TestTree_IndentStyle(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a:\n  b: c\n"), 0o600))

	_, out, _ := runCLI(t, "", "--no-color", "--branch-style", "indent", "tree", path)

	assert.Equal(t, []string{
		"╰─ cfg.yaml",
		"   ╰─ a",
		"      ╰─ b: c",
		"╰─ 2 nodes",
	}, lines(out))
}

func TestTree_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1, 2\n"), 0o600))

	code, _, stderr := runCLI(t, "", "tree", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "parsing")
}

func TestLog(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "build.log")

	code, out, stderr := runCLI(t, "", "--no-color", "log",
		"--status", "warn", "--style", "flat", "--file", "f.go", "--out", path, "cache", "miss")

	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(out, "Warning: cache miss | file f.go | time "), out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(out, "\n"), string(data))
}

func TestLog_ColoredUsesIcon(t *testing.T) {
	isolate(t)

	code, out, _ := runCLI(t, "", "log", "--status", "ok", "done")

	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "✓ "), out)
	assert.Contains(t, out, "done")
}

func TestLog_Errors(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, "", "log", "--status", "loud", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown status")

	code, _, _ = runCLI(t, "", "log")
	assert.Equal(t, 1, code)
}

func TestLog_PersistFailure(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "missing-dir", "build.log")

	code, _, stderr := runCLI(t, "", "--no-color", "log", "--out", path, "lost")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to persist logs")
	assert.Contains(t, stderr, "prettyterm: cannot persist logs")
}

func TestConfigErrorsAreReported(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, "", "--branch-style", "zigzag", "style", "x")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestConfigFileApplies(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".prettyterm.yaml"),
		[]byte("width: 12\nno_color: true\n"), 0o600))

	_, out, _ := runCLI(t, "x", "box")

	for _, l := range lines(out) {
		assert.Equal(t, 12, ansi.VisualWidth(l), l)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	code, out, _ := runCLI(t, "", "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "dev")
}
