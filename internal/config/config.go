// Package config loads settings for the lambda command from an optional YAML
// file. Command-line flags are applied on top by the caller.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "LAMBDA_CONFIG"

// DefaultMaxSteps bounds reduction when nothing else is configured.
const DefaultMaxSteps = 10000

// Config holds every tunable of the lambda command.
type Config struct {
	// MaxSteps bounds the number of reductions per program; 0 is unbounded.
	MaxSteps int `yaml:"max_steps"`
	// Timeout bounds the wall time per program, e.g. "2s"; 0 is none.
	Timeout time.Duration `yaml:"timeout"`
	// Color enables colored diagnostics.
	Color bool `yaml:"color"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
	// Trace prints every reduction step, not only the normal form.
	Trace bool `yaml:"trace"`
	// HistoryFile is where the REPL keeps its line history. Empty disables
	// history.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		MaxSteps: DefaultMaxSteps,
		Color:    true,
		Trace:    true,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".lambda_history")
	}
	return cfg
}

// Path returns flagValue if set, otherwise the value of $LAMBDA_CONFIG.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Parse(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping the current value of any field the
// document leaves out. Unknown keys are rejected.
func Parse(b []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return errors.Wrap(err, "parsing YAML")
	}
	return cfg.Validate()
}

// Validate rejects settings that cannot be honored.
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return errors.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
