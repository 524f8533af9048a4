package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/prettyterm/internal/logging"
	"github.com/dkoosis/prettyterm/pkg/ansi"
	"github.com/dkoosis/prettyterm/pkg/logger"
	"github.com/dkoosis/prettyterm/pkg/markup"
	"github.com/dkoosis/prettyterm/pkg/status"
	"github.com/dkoosis/prettyterm/pkg/theme"
	"github.com/dkoosis/prettyterm/pkg/tree"
)

// render expands style tags, or removes them when colors are off.
func (a *app) render(text string) string {
	if a.settings.NoColor {
		return markup.Strip(text)
	}
	return markup.Expand(text)
}

func (a *app) branch() tree.Branch {
	return tree.New(a.settings.Display, a.settings.BranchStyle).WithOutput(a.stdout)
}

// textArg joins positional arguments, or reads stdin when there are none.
func (a *app) textArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if theme.IsTerminal(a.stdin) {
		return "", errors.New("no text given: pass arguments or pipe input")
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func newStyleCmd(a *app) *cobra.Command {
	var strip bool
	cmd := &cobra.Command{
		Use:   "style [text...]",
		Short: "Expand <tag>…</tag> markup into ANSI escape codes",
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := a.textArg(args)
			if err != nil {
				return err
			}
			if strip {
				fmt.Fprintln(a.stdout, markup.Strip(text))
				return nil
			}
			fmt.Fprintln(a.stdout, a.render(text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strip, "strip", false, "remove tags instead of expanding them")
	return cmd
}

func newWidthCmd(a *app) *cobra.Command {
	var cells bool
	cmd := &cobra.Command{
		Use:   "width [text...]",
		Short: "Print the visual width of text, ignoring escape codes",
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := a.textArg(args)
			if err != nil {
				return err
			}
			if cells {
				fmt.Fprintf(a.stdout, "%d %d\n", ansi.VisualWidth(text), ansi.CellWidth(text))
				return nil
			}
			fmt.Fprintln(a.stdout, ansi.VisualWidth(text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&cells, "cells", false, "also print the terminal cell width")
	return cmd
}

func newBoxCmd(a *app) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Word-wrap stdin into a box as wide as the terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := io.ReadAll(a.stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			b := a.branch()
			fmt.Fprintln(a.stdout, b.FormatTableHeader(a.render(title)))
			if body := b.FormatTableMultiLine(a.render(string(data))); body != "" {
				fmt.Fprintln(a.stdout, body)
			}
			fmt.Fprintln(a.stdout, b.FormatTableFooter())
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "box title (may contain style tags)")
	return cmd
}

func newCodeCmd(a *app) *cobra.Command {
	var (
		start int
		title string
	)
	cmd := &cobra.Command{
		Use:   "code FILE",
		Short: "Print a file as a numbered, boxed listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if start < 0 {
				return fmt.Errorf("--start must not be negative, got %d", start)
			}
			if title == "" {
				title = filepath.Base(path)
			}

			b := a.branch()
			fmt.Fprintln(a.stdout, b.FormatTableHeader(a.render(title)))
			if listing := b.FormatTableCodeMultiLine(start, string(data)); listing != "" {
				fmt.Fprintln(a.stdout, listing)
			}
			fmt.Fprintln(a.stdout, b.FormatTableFooter())
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 1, "number of the first line")
	cmd.Flags().StringVar(&title, "title", "", "box title (default: file name)")
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE.yaml",
		Short: "Print a YAML document as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			start := time.Now()
			log := logging.GetLogger("tree")
			defer logging.LogDuration(log, start, "tree")

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			var doc yaml.Node
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			root := a.branch()
			n := a.walk(root.EnterBranch(a.render(filepath.Base(path))), &doc)
			fmt.Fprintln(a.stdout, root.LeaveBranch(fmt.Sprintf("%d nodes", n), status.OK))
			log.Debug().Str("path", path).Int("nodes", n).Msg("Printed tree")
			return nil
		},
	}
}

// walk prints node below b and returns the number of printed lines.
func (a *app) walk(b tree.Branch, node *yaml.Node) int {
	switch node.Kind {
	case yaml.DocumentNode:
		n := 0
		for _, c := range node.Content {
			n += a.walk(b, c)
		}
		return n
	case yaml.AliasNode:
		if node.Alias != nil {
			return a.walk(b, node.Alias)
		}
		return 0
	case yaml.MappingNode:
		n := 0
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			n += a.entry(b, key.Value, val)
		}
		return n
	case yaml.SequenceNode:
		n := 0
		for i, item := range node.Content {
			n += a.entry(b, fmt.Sprintf("[%d]", i), item)
		}
		return n
	default:
		a.leaf(b, node.Value)
		return 1
	}
}

// entry prints a scalar as "name: value" on one line and opens a sub-branch
// for anything else.
func (a *app) entry(b tree.Branch, name string, val *yaml.Node) int {
	if val.Kind == yaml.ScalarNode {
		a.leaf(b, name+": "+val.Value)
		return 1
	}
	return 1 + a.walk(b.EnterBranch(a.render(name)), val)
}

func (a *app) leaf(b tree.Branch, text string) {
	prefix := "├─ "
	if b.Style == tree.Indent {
		prefix = "╰─ "
	}
	fmt.Fprintln(a.stdout, b.FormatBranchLine(a.render(text), prefix))
}

func newLogCmd(a *app) *cobra.Command {
	var (
		statusName string
		styleName  string
		comp       logger.Component
		outPath    string
	)
	cmd := &cobra.Command{
		Use:   "log MESSAGE...",
		Short: "Print a formatted log line and optionally write it to a file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := status.Parse(statusName)
			if err != nil {
				return err
			}
			style := a.settings.LogStyle
			if styleName != "" {
				if style, err = logger.ParsePrintStyle(styleName); err != nil {
					return err
				}
			}

			lg := logger.New(logger.Now(), false)
			lg.Style = style
			lg.SetOutput(a.stdout)
			lg.Add(strings.Join(args, " "), comp, st, nil)

			rec := lg.Logs()[0]
			if a.settings.NoColor {
				fmt.Fprintln(a.stdout, rec.Format(style))
			} else {
				fmt.Fprintln(a.stdout, rec.Render(style, a.settings.Display))
			}
			if err := lg.Destroy(outPath, outPath != "", false); err != nil {
				diag := logging.GetLogger("log")
				diag.Warn().Err(err).Str("path", outPath).Msg("Failed to persist logs")
				return err
			}
			if outPath != "" {
				diag := logging.GetLogger("log")
				diag.Debug().Str("path", outPath).Msg("Persisted logs")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&statusName, "status", "info", "ok, error, fatal, info or warn")
	f.StringVar(&styleName, "style", "", "tiny, flat or full (default: resolved log style)")
	f.StringVar(&comp.File, "file", "", "source file reported in the line")
	f.StringVar(&comp.Func, "func", "", "function reported in the line")
	f.StringVar(&comp.Dir, "dir", "", "directory reported in the line")
	f.StringVar(&outPath, "out", "", "write the line to this file")
	return cmd
}
