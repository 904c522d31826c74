// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format                   string `yaml:"format"`
		Verbose                  bool   `yaml:"verbose"`
		Debug                    bool   `yaml:"debug"`
		NoColor                  bool   `yaml:"no_color"`
		AutoRepair               bool   `yaml:"auto_repair"`
		FieldCount               int    `yaml:"field_count"`
		DebounceMs               int    `yaml:"debounce_ms"`
		PolicyFile               string `yaml:"policy_file"`
		IntegrityIntervalSeconds int    `yaml:"integrity_interval_seconds"`
	} `yaml:"defaults"`

	// Validation rule settings
	Rules struct {
		MinLength           int     `yaml:"min_length"`
		MaxLength           int     `yaml:"max_length"`
		OptimalMin          int     `yaml:"optimal_min"`
		OptimalMax          int     `yaml:"optimal_max"`
		SimilarityThreshold float64 `yaml:"similarity_threshold"`
	} `yaml:"rules"`

	// Profiles for different editing scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named configuration profile
type Profile struct {
	Format      string `yaml:"format"`
	Verbose     bool   `yaml:"verbose"`
	Debug       bool   `yaml:"debug"`
	NoColor     bool   `yaml:"no_color"`
	AutoRepair  bool   `yaml:"auto_repair"`
	PolicyFile  string `yaml:"policy_file"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.AutoRepair = true
	config.Defaults.FieldCount = 5
	config.Defaults.DebounceMs = 300
	config.Defaults.IntegrityIntervalSeconds = 30

	// Set default rule values
	config.Rules.MinLength = 3
	config.Rules.MaxLength = 100
	config.Rules.OptimalMin = 20
	config.Rules.OptimalMax = 60
	config.Rules.SimilarityThreshold = 0.8

	// Add default review profile: strict output for editorial review passes
	config.Profiles["review"] = Profile{
		Format:      "text",
		Verbose:     true,
		NoColor:     true,
		AutoRepair:  false,
		Description: "Verbose plain output with auto-repair disabled, for reviewing fields as entered",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultAutoRepair := config.Defaults.AutoRepair

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling sets bool fields to false
	// when they're not present in the config file
	if !containsField(data, "defaults", "auto_repair") {
		config.Defaults.AutoRepair = defaultAutoRepair
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the configuration file, falling back to the
// default configuration on any error.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("topickit.yaml") {
		return "topickit.yaml"
	}
	if fileExists("topickit.yml") {
		return "topickit.yml"
	}

	// Check for .topickit.yaml in current directory (project-specific config)
	if fileExists(".topickit.yaml") {
		return ".topickit.yaml"
	}
	if fileExists(".topickit.yml") {
		return ".topickit.yml"
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range []string{"config.yaml", "config.yml"} {
			candidate := filepath.Join(home, ".topickit", name)
			if fileExists(candidate) {
				return candidate
			}
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the names of all configured profiles
func (c *Config) ListProfiles() []string {
	var names []string
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

// GetProfile returns the named profile, or nil if it does not exist
func (c *Config) GetProfile(name string) *Profile {
	if profile, ok := c.Profiles[name]; ok {
		return &profile
	}
	return nil
}

// containsField checks whether the raw YAML document explicitly sets a
// field at the given path
func containsField(data []byte, path ...string) bool {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}

	current := raw
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return false
		}
		current = next
	}
	return false
}

// ValidateConfig checks configuration values for consistency
func ValidateConfig(config *Config) error {
	if config.Defaults.FieldCount <= 0 {
		return fmt.Errorf("field_count must be positive, got %d", config.Defaults.FieldCount)
	}
	if config.Defaults.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms cannot be negative, got %d", config.Defaults.DebounceMs)
	}
	if config.Rules.MinLength < 0 || config.Rules.MaxLength < config.Rules.MinLength {
		return fmt.Errorf("invalid length bounds [%d,%d]", config.Rules.MinLength, config.Rules.MaxLength)
	}
	if config.Rules.OptimalMin > config.Rules.OptimalMax {
		return fmt.Errorf("invalid optimal window [%d,%d]", config.Rules.OptimalMin, config.Rules.OptimalMax)
	}
	if config.Rules.SimilarityThreshold < 0 || config.Rules.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0,1], got %v", config.Rules.SimilarityThreshold)
	}
	return nil
}
