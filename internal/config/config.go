package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/johns/ruleforge/internal/infer"
	"github.com/johns/ruleforge/internal/policy"
)

// Config holds all ruleforge configuration.
type Config struct {
	CacheDir string `toml:"cache_dir"`
	// Workers sizes the worker pools; 0 means one per CPU.
	Workers int `toml:"workers"`

	Inference InferenceConfig `toml:"inference"`
	Masks     MasksConfig     `toml:"masks"`
	Cache     CacheConfig     `toml:"cache"`
	Policy    policy.Policy   `toml:"policy"`
}

type InferenceConfig struct {
	MaxOperations int     `toml:"max_operations"`
	MinSimilarity float64 `toml:"min_similarity"`
	// Substitutions overrides the built-in leet table: each key is a
	// base letter, each value the string of its replacements, e.g.
	// a = "@4". Empty means the default table.
	Substitutions map[string]string `toml:"substitutions"`
}

type MasksConfig struct {
	// Custom defines the ?1..?9 character classes, in order.
	Custom []string `toml:"custom"`
}

type CacheConfig struct {
	// RetentionDays bounds cleanup; 0 keeps caches forever.
	RetentionDays int `toml:"retention_days"`
	// Catalog is the sqlite catalog path; empty derives it from
	// CacheDir.
	Catalog string `toml:"catalog"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheDir: "~/.cache/ruleforge",
		Inference: InferenceConfig{
			MaxOperations: infer.DefaultMaxOperations,
			MinSimilarity: infer.DefaultMinSimilarity,
		},
		Cache: CacheConfig{
			RetentionDays: 90,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.CacheDir = expandHome(cfg.CacheDir)
	cfg.Cache.Catalog = expandHome(cfg.Cache.Catalog)
	if err := cfg.Policy.Compile(); err != nil {
		return cfg, fmt.Errorf("policy: %w", err)
	}
	return cfg, nil
}

// InferOptions builds the inference options from the config, applying
// the substitution table overrides.
func (c Config) InferOptions() infer.Options {
	opts := infer.DefaultOptions()
	if c.Inference.MaxOperations > 0 {
		opts.MaxOperations = c.Inference.MaxOperations
	}
	if c.Inference.MinSimilarity > 0 {
		opts.MinSimilarity = c.Inference.MinSimilarity
	}
	if len(c.Inference.Substitutions) > 0 {
		table := make(infer.SubTable, len(c.Inference.Substitutions))
		for base, subs := range c.Inference.Substitutions {
			rs := []rune(base)
			if len(rs) != 1 {
				continue
			}
			table[rs[0]] = append(table[rs[0]], []rune(subs)...)
		}
		opts.Substitutions = table
	}
	return opts
}

// CustomClasses returns the configured ?1..?9 mask classes.
func (c Config) CustomClasses() []string {
	return c.Masks.Custom
}

// CatalogPath returns the sqlite catalog location.
func (c Config) CatalogPath() string {
	if c.Cache.Catalog != "" {
		return c.Cache.Catalog
	}
	return filepath.Join(c.CacheDir, "catalog.db")
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "ruleforge", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "ruleforge", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
