package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the ruleforge config directory path.
// Uses $XDG_CONFIG_HOME/ruleforge if set, otherwise ~/.config/ruleforge.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ruleforge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ruleforge")
}

// WriteDefault writes a default config.toml pointing at cacheDir.
// Returns the config file path. Skips if config.toml already exists.
func WriteDefault(cacheDir string) (string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	portablePath := CompressHome(cacheDir)

	content := fmt.Sprintf(`cache_dir = %q
workers = 0

[inference]
max_operations = 12
min_similarity = 0.6

[cache]
retention_days = 90

[policy]
min_length = 0
max_length = 0
`, portablePath)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
