package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Config is the top-level configuration struct. The three fence tags are
// deliberately not configurable: they are part of the tutorial markdown
// convention and matched bit-exact.
type Config struct {
	Shell    ShellConfig   `yaml:"shell"`
	Commands CommandConfig `yaml:"commands"`
	Logging  LoggingConfig `yaml:"logging"`
	Output   OutputConfig  `yaml:"output"`
}

type ShellConfig struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

type CommandConfig struct {
	// Timeout is the per-command timeout as a duration string.
	// "0" disables it.
	Timeout string `yaml:"timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Color string `yaml:"color"` // auto | always | never
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}
