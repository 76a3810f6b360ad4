package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the defaults a config file can set. Flags win over
// config values.
type Config struct {
	Input    string   `yaml:"input"`
	Out      string   `yaml:"out"`
	LogLevel string   `yaml:"log_level"`
	Cities   []string `yaml:"cities"`
}

// loadConfig reads a YAML config file. A missing path yields zero-value
// defaults; a present but unreadable or malformed file is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
