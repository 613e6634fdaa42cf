package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuapare/studykit/internal/logger"
	"github.com/spf13/viper"
)

// Load loads and merges configuration from global and project sources.
// Unreadable files are logged and skipped so a broken config never blocks
// recording a session.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if path == "" {
			continue
		}
		if err := loadFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring unreadable config", "path", path, "error", err)
		}
	}

	return cfg, nil
}

// LoadFile loads defaults overridden by a single explicit file. Unlike Load,
// any error including a missing file is returned.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// DataPath returns the counter data file for cfg.
func (c *Config) DataPath() string {
	if c.DataFile != "" {
		return ExpandHome(c.DataFile)
	}
	return filepath.Join(ExpandHome(c.Vault), ".studykit", "data.json")
}

// LogDir returns the configured log directory, or empty for the default.
func (c *Config) LogDir() string {
	return ExpandHome(c.Log.Dir)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".studykit", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".studykit", "config.yaml")
}

// ExpandHome replaces a leading "~" with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
