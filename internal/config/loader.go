package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.termtris/config.yaml -> ./configs/termtris.yaml
// -> embedded default -> Default().
//
// An explicit customPath must exist and parse. Broken files found by the search
// are skipped with a warning on logger, which may be nil. Values missing from a
// file keep their defaults. The result is validated.
func Load(customPath string, logger *log.Logger) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, "", err
		}
		return cfg, customPath, cfg.Validate()
	}

	candidates := []string{"configs/termtris.yaml"}
	if p := userConfigPath(); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			if logger != nil {
				logger.Warn("skipping config file", "path", path, "error", err)
			}
			continue
		}
		return cfg, path, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		if logger != nil {
			logger.Warn("embedded config unreadable, using built-in defaults", "error", err)
		}
		return Default(), "built-in", nil
	}
	return cfg, "embedded", cfg.Validate()
}

// loadFile parses path on top of Default().
func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns ~/.termtris/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termtris", "config.yaml")
}
