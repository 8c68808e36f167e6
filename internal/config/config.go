// Package config loads CLI/REPL defaults from YAML, the way
// internal/eval_harness's models.yml loader does for the teacher repo,
// and can load an optional .env file into the process environment. No
// Config field is read from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the CLI/REPL defaults a zydeco invocation reads; no
// command-line flag overrides them.
type Config struct {
	StepBudget int    `yaml:"step_budget"`
	Color      bool   `yaml:"color"`
	Prompt     string `yaml:"prompt"`

	// Externs maps an extern declaration's name to the registered
	// primitive it should resolve to, so a host program can rewire which
	// primitive backs a given extern without recompiling (e.g. an
	// extern declared as "add" in one program's source can bind to the
	// "int_add" primitive here rather than requiring the source itself
	// to spell the primitive's registered name).
	Externs map[string]string `yaml:"externs"`
}

// Default returns the built-in defaults used when no config file is
// present.
func Default() *Config {
	return &Config{
		StepBudget: 1_000_000,
		Color:      true,
		Prompt:     "zydeco> ",
	}
}

// Load reads a YAML config file at path, falling back to Default for any
// field the file doesn't set. A missing file is not an error — it
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads a .env file into the process environment, the way
// termfx-morfx's main ignores a missing .env file rather than treating
// it as fatal. Load does not consult the environment.
func LoadEnv(path string) {
	_ = godotenv.Load(path)
}
