// Package config holds transpiler-wide options loaded from an
// optional YAML file plus environment overrides, grounded on
// dublyo-dockerizer/internal/config's DefaultConfig/Load/loadFromEnv
// shape.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is justsh's persisted configuration. `cmd/justsh` reads only
// the Output section, as the fallback for --out's directory and
// --no-color; the Shell and Runtime sections are loaded but not used.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Shell   ShellConfig   `yaml:"shell"`
	Runtime RuntimeConfig `yaml:"runtime"`
}

// OutputConfig controls where and how the generated script is written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	NoColor bool   `yaml:"no_color"`
}

// ShellConfig holds an interpreter command and argument. They are not
// passed to codegen, so the generated script's default shell stays
// `sh -c` whatever these fields say.
type ShellConfig struct {
	Command string `yaml:"command"`
	Arg     string `yaml:"arg"`
}

// RuntimeConfig holds runtime defaults for the emitted script. Quiet is
// not passed to codegen and does not change the generated script.
type RuntimeConfig struct {
	Quiet bool `yaml:"quiet"`
}

// Default returns justsh's built-in configuration.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Command: "sh",
			Arg:     "-c",
		},
	}
}

// Load reads configuration from the first of the standard locations
// that exists, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	for _, path := range []string{".justsh.yml", ".justsh.yaml"} {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.loadFromEnv()
	return cfg, nil
}

// LoadFromFile reads configuration from a specific path.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFromFile(path); err != nil {
		return nil, err
	}
	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if shell := os.Getenv("JUSTSH_SHELL"); shell != "" {
		c.Shell.Command = shell
	}
	if arg := os.Getenv("JUSTSH_SHELL_ARG"); arg != "" {
		c.Shell.Arg = arg
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Output.NoColor = true
	}
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
