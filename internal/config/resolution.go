package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dkoosis/prettyterm/internal/logging"
	"github.com/dkoosis/prettyterm/pkg/logger"
	"github.com/dkoosis/prettyterm/pkg/theme"
	"github.com/dkoosis/prettyterm/pkg/tree"
)

// CliFlags holds command-line values. The *Set fields record whether the
// user passed the flag explicitly.
type CliFlags struct {
	ConfigPath  string
	Width       int
	BranchStyle string
	LogStyle    string
	NoColor     bool

	WidthSet       bool
	BranchStyleSet bool
	LogStyleSet    bool
	NoColorSet     bool
}

// Settings is the fully resolved configuration.
type Settings struct {
	Display     theme.DisplayConfig
	BranchStyle tree.BranchStyle
	LogStyle    logger.PrintStyle
	NoColor     bool

	// Resolution metadata for debugging: "cli", "env", "file" or "default".
	ConfigPath    string
	WidthSource   string
	NoColorSource string
}

// Resolve loads the config file and applies environment variables and
// flags on top of it.
func Resolve(flags CliFlags) (*Settings, error) {
	file, path, err := LoadFile(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	return resolveWith(flags, file, path)
}

func resolveWith(flags CliFlags, file *FileConfig, path string) (*Settings, error) {
	width, height := theme.TerminalSize()
	s := &Settings{
		ConfigPath:    path,
		WidthSource:   "default",
		NoColorSource: "default",
	}

	// Width: CLI > env > file > detected.
	switch {
	case flags.WidthSet:
		width, s.WidthSource = flags.Width, "cli"
	case os.Getenv("PRETTYTERM_WIDTH") != "":
		n, err := strconv.Atoi(os.Getenv("PRETTYTERM_WIDTH"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: PRETTYTERM_WIDTH=%q is not a width", ErrConfig, os.Getenv("PRETTYTERM_WIDTH"))
		}
		width, s.WidthSource = n, "env"
	case file.Width > 0:
		width, s.WidthSource = file.Width, "file"
	}
	if width < 0 {
		return nil, fmt.Errorf("%w: width %d must not be negative", ErrConfig, width)
	}
	if file.Height > 0 {
		height = file.Height
	}

	// NoColor: CLI > env > file > default.
	s.NoColor = file.NoColor
	if file.NoColor {
		s.NoColorSource = "file"
	}
	if v, ok := envBool("PRETTYTERM_NO_COLOR"); ok {
		s.NoColor, s.NoColorSource = v, "env"
	} else if os.Getenv("NO_COLOR") != "" {
		s.NoColor, s.NoColorSource = true, "env"
	}
	if flags.NoColorSet {
		s.NoColor, s.NoColorSource = flags.NoColor, "cli"
	}

	branchName := file.BranchStyle
	if flags.BranchStyleSet {
		branchName = flags.BranchStyle
	}
	branch, err := tree.ParseBranchStyle(branchName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	s.BranchStyle = branch

	logName := file.LogStyle
	if flags.LogStyleSet {
		logName = flags.LogStyle
	}
	logStyle, err := logger.ParsePrintStyle(logName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	s.LogStyle = logStyle

	colors, err := resolveColors(file.Colors)
	if err != nil {
		return nil, err
	}

	icons := theme.DefaultIconsTheme()
	if s.NoColor {
		icons = theme.ASCIIIconsTheme()
	}
	icons = overrideIcons(icons, file.Icons)

	s.Display = theme.NewDisplayConfig(colors, icons, width, height)

	log := logging.GetLogger("config")
	log.Debug().
		Str("path", path).
		Int("width", width).
		Str("widthSource", s.WidthSource).
		Bool("noColor", s.NoColor).
		Str("branchStyle", s.BranchStyle.String()).
		Msg("Resolved settings")
	return s, nil
}

func resolveColors(cfg ColorsConfig) (theme.ColorTheme, error) {
	colors := theme.DefaultColorTheme()
	fields := []struct {
		name string
		dst  *theme.TerminalColor
	}{
		{cfg.Hint, &colors.Hint},
		{cfg.Error, &colors.Error},
		{cfg.Success, &colors.Success},
		{cfg.Warning, &colors.Warning},
	}
	for _, f := range fields {
		if f.name == "" {
			continue
		}
		c, err := theme.ParseTerminalColor(f.name)
		if err != nil {
			return colors, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		*f.dst = c
	}
	return colors, nil
}

func overrideIcons(icons theme.IconsTheme, cfg IconsConfig) theme.IconsTheme {
	if cfg.Hint != "" {
		icons.Hint = cfg.Hint
	}
	if cfg.Error != "" {
		icons.Error = cfg.Error
	}
	if cfg.Success != "" {
		icons.Success = cfg.Success
	}
	if cfg.Warning != "" {
		icons.Warning = cfg.Warning
	}
	return icons
}

// envBool parses a boolean environment variable; ok is false when the
// variable is unset or not a boolean.
func envBool(key string) (value, ok bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
