// Package config provides configuration management for patchdoctor.
// Configuration is loaded from multiple sources with the following
// precedence: embedded defaults → global file → env vars → local file →
// CLI flags (applied by the cli package).
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// Config holds all patchdoctor settings. Fields ending in *Set track
// whether a field was explicitly present in a source, so later layers can
// override earlier ones with zero values.
type Config struct {
	MaxIterations int    `yaml:"max_iterations"`
	GitBinary     string `yaml:"git_binary"`
	Validate      bool   `yaml:"validate"`
	PreviewMaxLen int    `yaml:"preview_max_len"`

	MaxIterationsSet bool `yaml:"-"`
	ValidateSet      bool `yaml:"-"`
	PreviewMaxLenSet bool `yaml:"-"`

	sources []string
}

// Sources returns the ordered list of sources that contributed values.
func (c *Config) Sources() []string {
	return c.sources
}

// Load loads configuration from the default locations, auto-detecting a
// .patchdoctor/ directory in the current working directory for local
// overrides.
func Load() (*Config, error) {
	globalDir := DefaultConfigDir()

	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, ".patchdoctor")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			localDir = candidate
		}
	}

	return LoadWithDirs(globalDir, localDir)
}

// LoadWithDirs loads configuration with explicit global and local
// directories. Local config overrides global config per-field. An empty
// localDir skips the local layer.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	cfg.applyEnv()

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	return cfg, nil
}

// Check verifies the merged configuration holds usable values.
func (c *Config) Check() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.PreviewMaxLen < 1 {
		return fmt.Errorf("preview_max_len must be at least 1, got %d", c.PreviewMaxLen)
	}
	if c.GitBinary == "" {
		return fmt.Errorf("git_binary must not be empty")
	}
	return nil
}

// DefaultConfigDir returns the global configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "patchdoctor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".patchdoctor"
	}
	return filepath.Join(home, ".config", "patchdoctor")
}

func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// parse unmarshals YAML and records which keys were explicitly present.
func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	_, cfg.MaxIterationsSet = keys["max_iterations"]
	_, cfg.ValidateSet = keys["validate"]
	_, cfg.PreviewMaxLenSet = keys["preview_max_len"]

	return &cfg, nil
}

// mergeFrom overwrites fields that were explicitly set in other.
func (c *Config) mergeFrom(other *Config) {
	if other.MaxIterationsSet {
		c.MaxIterations = other.MaxIterations
		c.MaxIterationsSet = true
	}
	if other.GitBinary != "" {
		c.GitBinary = other.GitBinary
	}
	if other.ValidateSet {
		c.Validate = other.Validate
		c.ValidateSet = true
	}
	if other.PreviewMaxLenSet {
		c.PreviewMaxLen = other.PreviewMaxLen
		c.PreviewMaxLenSet = true
	}
}

// applyEnv overlays PATCHDOCTOR_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PATCHDOCTOR_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIterations = n
			c.MaxIterationsSet = true
			c.sources = append(c.sources, "env:PATCHDOCTOR_MAX_ITERATIONS")
		}
	}
	if v := os.Getenv("PATCHDOCTOR_GIT_BINARY"); v != "" {
		c.GitBinary = v
		c.sources = append(c.sources, "env:PATCHDOCTOR_GIT_BINARY")
	}
	if v := os.Getenv("PATCHDOCTOR_VALIDATE"); v != "" {
		c.Validate = v == "1" || v == "true"
		c.ValidateSet = true
		c.sources = append(c.sources, "env:PATCHDOCTOR_VALIDATE")
	}
	if v := os.Getenv("PATCHDOCTOR_PREVIEW_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PreviewMaxLen = n
			c.PreviewMaxLenSet = true
			c.sources = append(c.sources, "env:PATCHDOCTOR_PREVIEW_MAX_LEN")
		}
	}
}
