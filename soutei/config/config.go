// Package config loads the tool configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tool-level settings. The evaluation core takes its
// bounds per run; these are only the defaults the CLI applies when no
// flag overrides them.
type Config struct {
	StorePath   string `yaml:"store_path"`
	StepLimit   int    `yaml:"step_limit"`
	AnswerLimit int    `yaml:"answer_limit"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorePath:   "soutei.db",
		StepLimit:   10000,
		AnswerLimit: 100,
		LogLevel:    "info",
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
// A missing file is not an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path must not be empty")
	}
	if c.StepLimit < 0 {
		return fmt.Errorf("step_limit must be non-negative, got %d", c.StepLimit)
	}
	if c.AnswerLimit < 0 {
		return fmt.Errorf("answer_limit must be non-negative, got %d", c.AnswerLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
