package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LogConfig is the logging section of the config file
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// Config holds run settings, read from a YAML file and overridden by flags
type Config struct {
	Buckets   []string  `yaml:"buckets"`   // bucket names to inspect; empty means all
	Resolved  bool      `yaml:"resolved"`  // also extract project deps from resolved artifacts
	Curations string    `yaml:"curations"` // optional curation file
	Log       LogConfig `yaml:"log"`
}

// DefaultConfig returns the settings used when no config file is given
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// WantsBucket reports whether the named bucket is selected
func (c *Config) WantsBucket(name string) bool {
	if len(c.Buckets) == 0 {
		return true
	}
	for _, b := range c.Buckets {
		if b == name {
			return true
		}
	}
	return false
}
