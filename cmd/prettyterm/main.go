// prettyterm renders style tags, boxed tables, code listings and trees to
// the terminal.
//
// Usage:
//
//	prettyterm style "<green|bold>ok</green|bold> all tests passed"
//	go test ./... 2>&1 | prettyterm box --title "Test output"
//	prettyterm code main.go --start 1
//	prettyterm tree deploy.yaml
//	prettyterm log --status warn --out build.log "cache miss"
//
// Width, branch style and colors come from flags, environment variables
// and .prettyterm.yaml, in that order.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkoosis/prettyterm/internal/config"
	"github.com/dkoosis/prettyterm/internal/logging"
	"github.com/dkoosis/prettyterm/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "prettyterm: %v\n", err)
		return 1
	}
	return 0
}

// app carries the resolved settings and streams shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags     config.CliFlags
	verbosity int
	settings  *config.Settings
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "prettyterm",
		Short:         "Render styled trees, tables and code listings in the terminal",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigPath, "config", "", "path to a .prettyterm.yaml file")
	pf.IntVar(&a.flags.Width, "width", 0, "terminal width in columns (default: detected)")
	pf.StringVar(&a.flags.BranchStyle, "branch-style", "unicode", "tree drawing style: unicode or indent")
	pf.StringVar(&a.flags.LogStyle, "log-style", "tiny", "log line preset: tiny, flat or full")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "disable ANSI colors")
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase diagnostic logging (repeatable)")

	root.AddCommand(
		newStyleCmd(a),
		newWidthCmd(a),
		newBoxCmd(a),
		newCodeCmd(a),
		newTreeCmd(a),
		newLogCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logging.Setup(a.verbosity, a.stderr)

	pf := cmd.Flags()
	a.flags.WidthSet = pf.Changed("width")
	a.flags.BranchStyleSet = pf.Changed("branch-style")
	a.flags.LogStyleSet = pf.Changed("log-style")
	a.flags.NoColorSet = pf.Changed("no-color")

	settings, err := config.Resolve(a.flags)
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}
