// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	// With no config file, should return defaults without error
	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: json
  debounce_ms: 500
rules:
  optimal_min: 25
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.DebounceMs != 500 {
		t.Errorf("expected debounce_ms=500, got %d", cfg.Defaults.DebounceMs)
	}
	if cfg.Rules.OptimalMin != 25 {
		t.Errorf("expected optimal_min=25, got %d", cfg.Rules.OptimalMin)
	}
	// Values not present in the file keep their defaults
	if cfg.Rules.MaxLength != 100 {
		t.Errorf("expected default max_length=100, got %d", cfg.Rules.MaxLength)
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if !cfg.Defaults.AutoRepair {
		t.Error("expected auto_repair=true by default")
	}
	if cfg.Defaults.DebounceMs != 300 {
		t.Errorf("expected default debounce_ms=300, got %d", cfg.Defaults.DebounceMs)
	}
	if cfg.Defaults.FieldCount != 5 {
		t.Errorf("expected default field_count=5, got %d", cfg.Defaults.FieldCount)
	}
	if cfg.Rules.SimilarityThreshold != 0.8 {
		t.Errorf("expected default similarity_threshold=0.8, got %v", cfg.Rules.SimilarityThreshold)
	}
}

func TestLoadConfig_AutoRepairDefaultRestored(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	// auto_repair not mentioned: must stay true despite zero-value unmarshal
	content := `
defaults:
  format: yaml
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Defaults.AutoRepair {
		t.Error("auto_repair default should be restored when absent from file")
	}
}

func TestLoadConfig_AutoRepairExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  auto_repair: false
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.AutoRepair {
		t.Error("explicit auto_repair=false should be honored")
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
	// Default review profile should exist
	if _, ok := cfg.Profiles["review"]; !ok {
		t.Error("expected 'review' profile to exist in defaults")
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero field count", func(c *Config) { c.Defaults.FieldCount = 0 }},
		{"negative debounce", func(c *Config) { c.Defaults.DebounceMs = -1 }},
		{"inverted length bounds", func(c *Config) { c.Rules.MaxLength = 1; c.Rules.MinLength = 10 }},
		{"inverted optimal window", func(c *Config) { c.Rules.OptimalMin = 70; c.Rules.OptimalMax = 20 }},
		{"threshold above one", func(c *Config) { c.Rules.SimilarityThreshold = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _ := LoadConfig("")
			tc.mutate(cfg)
			if err := ValidateConfig(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
