package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory and
// in ConfigDir.
const FileName = "flyview.yaml"

// EnvPath names an environment variable pointing at a config file. It is
// consulted when -config is not given.
const EnvPath = "FLYVIEW_CONFIG"

// Load builds the effective config: defaults, then the first config file
// found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolvePath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath picks the config file. An explicit -config or $FLYVIEW_CONFIG
// is returned as is so a missing file is reported; otherwise the search
// paths are tried in order.
func resolvePath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvPath); path != "" {
		return path
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file from searchPaths, or "".
func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// searchPaths lists where a config file is looked for: the working
// directory first, then the per-user config directory.
func searchPaths() []string {
	return []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}
}

// ConfigDir returns the per-user directory for flyview settings.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "FlyView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "FlyView")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "flyview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flyview")
	}
}

// loadFromFile overlays the YAML in path on cfg. Keys missing from the
// file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
