package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.frameloop/config.yaml -> ./configs/frameloop.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first; a named path that fails is an error
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userPath := userConfigPath("config.yaml"); userPath != "" {
		if cfg, err := loadFile(userPath); err == nil {
			if err := cfg.Validate(); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "frameloop.yaml")); err == nil {
		if err := cfg.Validate(); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default() // file values overlay the defaults

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if
// the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".frameloop", filename)
}
