// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package repair applies a whitelist of safe, idempotent text
// normalizations to field values. Anything that would alter word
// choice, meaning, or structure is outside the allow-list and is
// never touched here.
package repair

import (
	"regexp"
	"strings"
	"unicode"
)

// Issue identifies a repairable problem detected during basic validation.
type Issue string

const (
	IssueExcessWhitespace      Issue = "excess_whitespace"
	IssueContainsHTMLTags      Issue = "contains_html_tags"
	IssueMissingCapitalization Issue = "missing_capitalization"
)

// Action strings reported for each performed repair.
const (
	ActionTrimmedWhitespace = "Trimmed excess whitespace"
	ActionRemovedHTMLTags   = "Removed HTML tags"
	ActionCapitalizedFirst  = "Capitalized first letter"
)

// Result describes the outcome of one repair pass.
type Result struct {
	Repaired      bool
	Actions       []string
	OriginalValue string
	RepairedValue string
}

// Engine performs allow-listed repairs. Issues not on the allow-list
// are ignored: they are reported as warnings by the validator but the
// value is left untouched.
type Engine struct {
	htmlTags *regexp.Regexp
	allowed  map[Issue]bool
}

// NewEngine creates a repair engine with the default allow-list.
func NewEngine() *Engine {
	return &Engine{
		htmlTags: regexp.MustCompile(`<[^>]*>`),
		allowed: map[Issue]bool{
			IssueExcessWhitespace:      true,
			IssueContainsHTMLTags:      true,
			IssueMissingCapitalization: true,
		},
	}
}

// Repair applies the allow-listed repairs for the detected issues and
// returns the result. Repairs run in a fixed order (trim, strip tags,
// capitalize) regardless of the order issues were detected in, so the
// reported actions are deterministic. Each action is idempotent:
// repairing an already-repaired value reports Repaired=false. Repair
// never fails; absence of issues yields an unchanged value.
func (e *Engine) Repair(value string, issues []Issue) Result {
	result := Result{
		OriginalValue: value,
		RepairedValue: value,
	}

	requested := make(map[Issue]bool, len(issues))
	for _, issue := range issues {
		if e.allowed[issue] {
			requested[issue] = true
		}
	}

	current := value

	if requested[IssueExcessWhitespace] {
		trimmed := strings.TrimSpace(current)
		if trimmed != current {
			current = trimmed
			result.Actions = append(result.Actions, ActionTrimmedWhitespace)
			result.Repaired = true
		}
	}

	if requested[IssueContainsHTMLTags] {
		stripped := e.htmlTags.ReplaceAllString(current, "")
		if stripped != current {
			current = stripped
			result.Actions = append(result.Actions, ActionRemovedHTMLTags)
			result.Repaired = true
		}
	}

	if requested[IssueMissingCapitalization] {
		capitalized := capitalizeFirst(current)
		if capitalized != current {
			current = capitalized
			result.Actions = append(result.Actions, ActionCapitalizedFirst)
			result.Repaired = true
		}
	}

	result.RepairedValue = current
	return result
}

// capitalizeFirst upper-cases the first rune when it is a lower-case letter.
func capitalizeFirst(s string) string {
	for i, r := range s {
		if unicode.IsLower(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
		return s
	}
	return s
}
