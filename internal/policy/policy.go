// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package policy holds the content-specific term checks: a denylist
// (hard error), promotional language (warning), and vague language
// (suggestion). The term lists are a pluggable policy, loadable from a
// YAML rules file; the built-in lists are placeholders suitable for
// development, not a production vocabulary.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages emitted per finding category.
const (
	MessageDenied      = "Content contains inappropriate language"
	MessagePromotional = "Consider using more professional, educational language"
	MessageVague       = "Be more specific about your expertise area"
)

// Findings holds the outcome of one policy check, bucketed by severity.
type Findings struct {
	Errors      []string
	Warnings    []string
	Suggestions []string
}

// Policy checks a field value against content rules.
type Policy interface {
	Check(value string) Findings
}

// Rules is the on-disk shape of a policy rules file.
type Rules struct {
	Version          string   `yaml:"version"`
	DeniedTerms      []string `yaml:"denied_terms"`
	PromotionalTerms []string `yaml:"promotional_terms"`
	VagueTerms       []string `yaml:"vague_terms"`
}

// TermListPolicy implements Policy with case-insensitive substring
// matching against three term lists.
type TermListPolicy struct {
	denied      []string
	promotional []string
	vague       []string
}

// NewDefaultPolicy returns a policy with the built-in placeholder lists.
func NewDefaultPolicy() *TermListPolicy {
	return NewTermListPolicy(Rules{
		DeniedTerms:      []string{"damn", "hell", "crap"},
		PromotionalTerms: []string{"buy now", "click here", "free", "guaranteed", "limited time"},
		VagueTerms:       []string{"things", "stuff", "various", "general", "misc"},
	})
}

// NewTermListPolicy builds a policy from explicit rules. Terms are
// lowercased once at construction.
func NewTermListPolicy(rules Rules) *TermListPolicy {
	return &TermListPolicy{
		denied:      lowercaseAll(rules.DeniedTerms),
		promotional: lowercaseAll(rules.PromotionalTerms),
		vague:       lowercaseAll(rules.VagueTerms),
	}
}

// LoadPolicy reads a rules file and builds a policy from it. An empty
// path, a missing file, unparsable YAML, or a file that defines no
// term lists at all falls back to the default policy; a rules file
// problem must never silently empty the policy.
func LoadPolicy(path string) *TermListPolicy {
	if path == "" {
		return NewDefaultPolicy()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return NewDefaultPolicy()
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return NewDefaultPolicy()
	}
	if len(rules.DeniedTerms)+len(rules.PromotionalTerms)+len(rules.VagueTerms) == 0 {
		return NewDefaultPolicy()
	}
	return NewTermListPolicy(rules)
}

// Check runs all three term checks against the value. An empty value
// yields no findings.
func (p *TermListPolicy) Check(value string) Findings {
	var findings Findings
	if value == "" {
		return findings
	}

	lower := strings.ToLower(value)

	if matchesAny(lower, p.denied) {
		findings.Errors = append(findings.Errors, MessageDenied)
	}
	if matchesAny(lower, p.promotional) {
		findings.Warnings = append(findings.Warnings, MessagePromotional)
	}
	if matchesAny(lower, p.vague) {
		findings.Suggestions = append(findings.Suggestions, MessageVague)
	}
	return findings
}

// SaveRules writes a rules file to disk, creating parent directories
// as needed.
func SaveRules(rules Rules, path string) error {
	if rules.Version == "" {
		rules.Version = "1.0"
	}
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("error marshaling policy rules: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating policy directory: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("error writing policy rules: %w", err)
	}
	return nil
}

func matchesAny(lower string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func lowercaseAll(terms []string) []string {
	result := make([]string, 0, len(terms))
	for _, term := range terms {
		result = append(result, strings.ToLower(term))
	}
	return result
}
