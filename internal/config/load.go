package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "PROPSIM_CONFIG"

// Load builds the effective config: defaults, then the first config file
// found, then CLI flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// configFile picks the flag, then the environment, then the search locations.
func configFile() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return findConfigFile()
}

// findConfigFile returns the first propsim.yaml in the working directory or
// the user config dir.
func findConfigFile() string {
	for _, path := range []string{
		"./propsim.yaml",
		filepath.Join(ConfigDir(), "propsim.yaml"),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardProps")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardProps")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-props")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-props")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are errors so a
// misspelled prop field does not silently fall back to its default. A props
// list in the file replaces the default scene rather than merging into it.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
