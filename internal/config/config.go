// Package config loads CLI configuration from the passcheck home
// directory (~/.passcheck by default).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name inside the base directory.
const FileName = "config.yaml"

// Config holds CLI defaults. All fields are optional; zero values fall
// back to the built-in defaults.
type Config struct {
	// WordlistPath is a flat common-passwords file checked on every run
	// when no imported store exists.
	WordlistPath string `yaml:"wordlist_path"`
	// WordlistEncoding is the encoding of WordlistPath (utf8, latin1, utf16).
	WordlistEncoding string `yaml:"wordlist_encoding"`
	// StorePath is the imported wordlist database location.
	StorePath string `yaml:"store_path"`
	// HistoryPath is the check history directory.
	HistoryPath string `yaml:"history_path"`
	// History disables check recording when false.
	History *bool `yaml:"history"`
	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`
}

// BaseDir returns the passcheck home directory.
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".passcheck"), nil
}

// Load reads the config file under dir. A missing file yields the
// defaults; a malformed file is an error.
func Load(dir string) (Config, error) {
	cfg := defaults(dir)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	// Fill any paths the file left empty.
	base := defaults(dir)
	if cfg.StorePath == "" {
		cfg.StorePath = base.StorePath
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = base.HistoryPath
	}
	return cfg, nil
}

// HistoryEnabled reports whether checks should be recorded.
func (c Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

func defaults(dir string) Config {
	return Config{
		StorePath:   filepath.Join(dir, "wordlist.db"),
		HistoryPath: filepath.Join(dir, "history"),
	}
}
