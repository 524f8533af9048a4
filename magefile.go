//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/prettyterm/pkg/logger"
	"github.com/dkoosis/prettyterm/pkg/markup"
	"github.com/dkoosis/prettyterm/pkg/status"
	"github.com/dkoosis/prettyterm/pkg/theme"
	"github.com/dkoosis/prettyterm/pkg/tree"
)

const (
	modulePath = "github.com/dkoosis/prettyterm"
	binPath    = "./bin/prettyterm"
)

var (
	display = theme.DefaultDisplayConfig()
	root    = tree.New(display, tree.Unicode)
	build   = logger.New(logger.Now(), false)
)

// Default target - build the binary
var Default = Build

// Build builds the prettyterm binary with version metadata.
func Build() error {
	step := root.EnterBranch(markup.Expand("<bold>Build</bold>"))

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*"),
		gitOutput("unknown", "rev-parse", "--short", "HEAD"), time.Now().UTC().Format(time.RFC3339))

	if err := runStep(step, "go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/prettyterm"); err != nil {
		return err
	}
	report(step, status.OK, "built "+binPath)
	return nil
}

// Test runs the test suite with the race detector.
func Test() error {
	step := root.EnterBranch(markup.Expand("<bold>Test</bold>"))
	if err := runStep(step, "go", "test", "-race", "-count=1", "./..."); err != nil {
		return err
	}
	report(step, status.OK, "all packages passed")
	return nil
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs every linter.
func (Lint) All() {
	mg.SerialDeps(Lint{}.Vet, Lint{}.Golangci)
}

// Vet runs go vet.
func (Lint) Vet() error {
	step := root.EnterBranch(markup.Expand("<bold>Vet</bold>"))
	return runStep(step, "go", "vet", "./...")
}

// Golangci runs golangci-lint when it is installed.
func (Lint) Golangci() error {
	step := root.EnterBranch(markup.Expand("<bold>Golangci-lint</bold>"))
	err := runStep(step, "golangci-lint", "run", "--timeout=5m", "./...")
	if errors.Is(err, exec.ErrNotFound) {
		report(step, status.Warn, "golangci-lint not found, skipped")
		return nil
	}
	return err
}

// Clean removes build artifacts.
func Clean() error {
	step := root.EnterBranch(markup.Expand("<bold>Clean</bold>"))
	if err := os.RemoveAll("./bin"); err != nil {
		return err
	}
	report(step, status.OK, "removed ./bin")
	return nil
}

// Demo prints a boxed listing of this file and a tree of the module layout.
func Demo() error {
	data, err := os.ReadFile("magefile.go")
	if err != nil {
		return err
	}
	fmt.Println(root.FormatTableHeader(markup.Expand("<cyan|bold>magefile.go</cyan|bold>")))
	fmt.Println(root.FormatTableCodeMultiLine(1, strings.Join(strings.SplitN(string(data), "\n", 13)[:12], "\n")))
	fmt.Println(root.FormatTableFooter())

	pkgs := root.EnterBranch("pkg")
	for _, name := range []string{"ansi", "markup", "tree", "theme", "status", "logger"} {
		fmt.Println(pkgs.FormatBranchLine(markup.Expand("<green>"+name+"</green>"), "├─ "))
	}
	report(pkgs, status.OK, "demo complete")

	return build.Destroy("", false, true)
}

// runStep runs a command with its output boxed below step.
func runStep(step tree.Branch, name string, args ...string) error {
	if mg.Verbose() {
		fmt.Println(step.FormatBranchLine(name+" "+strings.Join(args, " "), "$ "))
	}
	out, err := exec.Command(name, args...).CombinedOutput()
	if len(out) > 0 {
		fmt.Println(step.FormatTableHeader(name))
		fmt.Println(step.FormatTableMultiLine(string(out)))
		fmt.Println(step.FormatTableFooter())
	}
	if err != nil {
		report(step, status.Error, fmt.Sprintf("%s failed: %v", name, err))
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func report(step tree.Branch, st status.Status, msg string) {
	build.Add(msg, logger.Component{File: "magefile.go", Func: step.Name}, st, nil)
	logs := build.Logs()
	fmt.Println(step.LeaveBranch(logs[len(logs)-1].Render(logger.Tiny, display), st))
}

func gitOutput(fallback string, args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(string(out))
}
