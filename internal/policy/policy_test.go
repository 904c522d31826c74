// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck_DefaultPolicy(t *testing.T) {
	p := NewDefaultPolicy()

	cases := []struct {
		name        string
		value       string
		errors      int
		warnings    int
		suggestions int
	}{
		{"clean value", "Podcast marketing strategies", 0, 0, 0},
		{"denied term", "What the hell is marketing", 1, 0, 0},
		{"promotional term", "Buy now and learn marketing", 0, 1, 0},
		{"vague term", "Various things about business", 0, 0, 1},
		{"case insensitive", "GUARANTEED results", 0, 1, 0},
		{"empty value", "", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			findings := p.Check(tc.value)
			if len(findings.Errors) != tc.errors {
				t.Errorf("expected %d errors, got %v", tc.errors, findings.Errors)
			}
			if len(findings.Warnings) != tc.warnings {
				t.Errorf("expected %d warnings, got %v", tc.warnings, findings.Warnings)
			}
			if len(findings.Suggestions) != tc.suggestions {
				t.Errorf("expected %d suggestions, got %v", tc.suggestions, findings.Suggestions)
			}
		})
	}
}

func TestLoadPolicy_RulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")

	content := `
version: "1.0"
denied_terms:
  - forbidden
promotional_terms:
  - act fast
vague_terms:
  - whatever
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	p := LoadPolicy(path)

	if findings := p.Check("A forbidden subject"); len(findings.Errors) != 1 {
		t.Errorf("expected custom denied term to match, got %v", findings.Errors)
	}
	// Default lists are replaced, not merged
	if findings := p.Check("buy now"); len(findings.Warnings) != 0 {
		t.Errorf("default promotional terms should be replaced, got %v", findings.Warnings)
	}
}

func TestLoadPolicy_FallsBackToDefaults(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", "/nonexistent/policy.yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := LoadPolicy(tc.path)
			if p == nil {
				t.Fatal("expected non-nil policy")
			}
			if findings := p.Check("buy now"); len(findings.Warnings) != 1 {
				t.Error("expected default promotional list to be active")
			}
		})
	}
}

func TestLoadPolicy_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("\tdenied_terms: [unclosed"), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	// Should fall back to defaults, not fail
	p := LoadPolicy(path)
	if findings := p.Check("buy now"); len(findings.Warnings) != 1 {
		t.Error("expected fallback to default policy on parse error")
	}
}

func TestLoadPolicy_EmptyRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	// A file defining no term lists must not disable every check
	p := LoadPolicy(path)
	if findings := p.Check("buy now"); len(findings.Warnings) != 1 {
		t.Error("expected fallback to default policy when no term lists are defined")
	}
	if findings := p.Check("What the hell"); len(findings.Errors) != 1 {
		t.Error("expected default denied list to remain active")
	}
}

func TestSaveRules_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules", "policy.yaml")

	rules := Rules{
		DeniedTerms:      []string{"badword"},
		PromotionalTerms: []string{"sale"},
		VagueTerms:       []string{"something"},
	}
	if err := SaveRules(rules, path); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	p := LoadPolicy(path)
	if findings := p.Check("badword here"); len(findings.Errors) != 1 {
		t.Error("expected saved denied term to match after reload")
	}
}
