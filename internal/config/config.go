// Package config loads leetcoder configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = ".leetcoder.yaml"

// Config configures storage locations and remote client behavior.
type Config struct {
	// DataDir holds the SQLite database file.
	DataDir string `yaml:"data_dir"`

	// SolutionsDir is where generated stub files are written.
	SolutionsDir string `yaml:"solutions_dir"`

	// Language selects the stub language profile ("python3" or "go").
	Language string `yaml:"language"`

	// RequestTimeout bounds each remote catalog request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// SyncDelay is the fixed pause between bulk-sync requests.
	SyncDelay time.Duration `yaml:"sync_delay"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

func (c *Config) defaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.SolutionsDir == "" {
		c.SolutionsDir = "LeetCodeSolutions"
	}
	if c.Language == "" {
		c.Language = "python3"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.SyncDelay <= 0 {
		c.SyncDelay = 500 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Load reads the config file at path. A missing file is not an error;
// defaults apply. LEETCODER_DATA_DIR and LEETCODER_SOLUTIONS_DIR override
// the file's values when set.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file: run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if dir := os.Getenv("LEETCODER_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if dir := os.Getenv("LEETCODER_SOLUTIONS_DIR"); dir != "" {
		cfg.SolutionsDir = dir
	}

	cfg.defaults()
	return cfg, nil
}
