package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/prettyterm/internal/logging"
)

// FileName is the config file looked up in the working directory and in
// the user config directory.
const FileName = ".prettyterm.yaml"

// ErrConfig is wrapped by every error caused by an unreadable or invalid
// configuration.
var ErrConfig = errors.New("invalid configuration")

// ColorsConfig names a color per message kind.
type ColorsConfig struct {
	Hint    string `yaml:"hint"`
	Error   string `yaml:"error"`
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
}

// IconsConfig overrides icons per message kind.
type IconsConfig struct {
	Hint    string `yaml:"hint"`
	Error   string `yaml:"error"`
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
}

// FileConfig is the content of a .prettyterm.yaml file. Zero values mean
// "not set".
type FileConfig struct {
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	BranchStyle string       `yaml:"branch_style"`
	LogStyle    string       `yaml:"log_style"`
	NoColor     bool         `yaml:"no_color"`
	Colors      ColorsConfig `yaml:"colors"`
	Icons       IconsConfig  `yaml:"icons"`
}

// LoadFile reads the config at path. An empty path triggers discovery; when
// nothing is found an empty FileConfig and an empty path are returned.
func LoadFile(path string) (*FileConfig, string, error) {
	logger := logging.GetLogger("config")

	if path == "" {
		path = getConfigPath()
		if path == "" {
			logger.Debug().Msg("No config file found, using defaults")
			return &FileConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("%w: reading %s: %w", ErrConfig, path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("%w: parsing %s: %w", ErrConfig, path, err)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, path, fmt.Errorf("%w: %s: width and height must not be negative", ErrConfig, path)
	}

	logger.Debug().Str("path", path).Msg("Loaded config file")
	return &cfg, path, nil
}

// getConfigPath looks for the config in the working directory first, then
// in the user config directory.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "prettyterm", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
