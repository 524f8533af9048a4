// Package config resolves display settings for prettyterm.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--width, --branch-style, --log-style, --no-color)
//  2. Environment variables (PRETTYTERM_WIDTH, PRETTYTERM_NO_COLOR, NO_COLOR)
//  3. YAML config file (.prettyterm.yaml in the working directory, or
//     $XDG_CONFIG_HOME/prettyterm/.prettyterm.yaml)
//  4. Defaults (detected terminal size, Unicode branches, tiny log lines)
//
// # Example
//
//	width: 100
//	branch_style: indent
//	log_style: full
//	no_color: false
//	colors:
//	  hint: cyan
//	  warning: magenta
//	icons:
//	  success: "+"
//
// Unknown color names and style names are reported as errors wrapping
// ErrConfig rather than silently ignored.
package config
