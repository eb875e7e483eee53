// Package config loads a project's tyro.yaml and holds the CLI-facing
// constants (source extension, cache location, color default) a driver
// needs beyond what the core compiler consumes. Grounded on the teacher's
// ext/config.go + config/constants.go split: small, yaml-backed, defaults
// filled in after an optional file load rather than required.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceExt is the file extension the CLI driver looks for when walking a
// project directory.
const SourceExt = ".ty"

// FileName is the name of the per-project configuration file.
const FileName = "tyro.yaml"

// DefaultCacheDir is the CacheDir value Load fills in when tyro.yaml sets
// none. cmd/tyro does not read CacheDir: its diagnostics cache is off unless
// the -cache flag names a database path.
const DefaultCacheDir = ".tyro-cache"

// Config is the parsed shape of tyro.yaml.
type Config struct {
	// CacheDir overrides DefaultCacheDir.
	CacheDir string `yaml:"cacheDir"`
	// Color forces colorized CLI output on or off; nil means "detect from
	// the terminal" (see cmd/tyro).
	Color *bool `yaml:"color"`
	// Exclude lists glob patterns of source files to skip.
	Exclude []string `yaml:"exclude"`
}

// Default returns a Config with every field at its zero/default value.
func Default() *Config {
	return &Config{CacheDir: DefaultCacheDir}
}

// Load reads path (typically "tyro.yaml" in a project root) and merges it
// onto Default(). A missing file is not an error: the caller gets defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	return cfg, nil
}
