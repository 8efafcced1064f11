// Package config holds ontoscout configuration: where the ontology corpus
// lives, how matching behaves, and how the CLI logs. Configuration is read
// from a YAML file with environment variable overrides; a missing file
// just yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all ontoscout configuration.
type Config struct {
	// Ontology corpus location and reload behavior
	Ontology OntologyConfig `yaml:"ontology"`

	// Matching engine settings
	Matching MatchingConfig `yaml:"matching"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// OntologyConfig configures the ontology corpus.
type OntologyConfig struct {
	// Directory holding the YAML corpus (global docs at the root, one
	// subdirectory per namespace)
	Dir string `yaml:"dir"`

	// Watch rebuilds the snapshot when corpus files change
	Watch bool `yaml:"watch"`
}

// MatchingConfig configures type ranking.
type MatchingConfig struct {
	// Matches scoring strictly above this count as best fits
	ScoreThreshold float64 `yaml:"score_threshold"`

	// How many top matches the CLI prints by default
	ListSize int `yaml:"list_size"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			Dir:   "ontology",
			Watch: false,
		},
		Matching: MatchingConfig{
			ScoreThreshold: -0.5,
			ListSize:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ONTOSCOUT_ONTOLOGY"); dir != "" {
		c.Ontology.Dir = dir
	}
	if raw := os.Getenv("ONTOSCOUT_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Matching.ScoreThreshold = v
		}
	}
	if level := os.Getenv("ONTOSCOUT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Ontology.Dir == "" {
		return fmt.Errorf("ontology directory not configured (set ontology.dir or ONTOSCOUT_ONTOLOGY)")
	}
	if c.Matching.ScoreThreshold < -1 || c.Matching.ScoreThreshold > 1 {
		return fmt.Errorf("match score threshold %g outside [-1, 1]", c.Matching.ScoreThreshold)
	}
	if c.Matching.ListSize <= 0 {
		return fmt.Errorf("match list size must be positive, got %d", c.Matching.ListSize)
	}
	return nil
}
