package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig holds defaults read from the optional config file at
// $XDG_CONFIG_HOME/rip/config.yaml (~/.config/rip/config.yaml when
// XDG_CONFIG_HOME is unset). Flags and environment variables take
// precedence over it.
type FileConfig struct {
	// Graveyard overrides the default graveyard location.
	Graveyard string `yaml:"graveyard"`

	// MaxDepth overrides the default glob walk depth.
	MaxDepth int `yaml:"max_depth"`
}

// LoadFile reads the config file. A missing file yields a zero config.
func LoadFile() (*FileConfig, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func filePath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "rip", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rip", "config.yaml"), nil
}
