// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package repair

import (
	"reflect"
	"testing"
)

func TestRepair_TrimAndStripHTML(t *testing.T) {
	e := NewEngine()

	result := e.Repair("  <b>AI</b> marketing strategy  ", []Issue{
		IssueExcessWhitespace,
		IssueContainsHTMLTags,
	})

	if !result.Repaired {
		t.Fatal("expected repair to be performed")
	}
	if result.RepairedValue != "AI marketing strategy" {
		t.Errorf("expected %q, got %q", "AI marketing strategy", result.RepairedValue)
	}
	expected := []string{ActionTrimmedWhitespace, ActionRemovedHTMLTags}
	if !reflect.DeepEqual(result.Actions, expected) {
		t.Errorf("expected actions %v, got %v", expected, result.Actions)
	}
	if result.OriginalValue != "  <b>AI</b> marketing strategy  " {
		t.Error("original value should be retained for transparency")
	}
}

func TestRepair_Capitalization(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
		repaired bool
	}{
		{"lowercase letter", "marketing strategy", "Marketing strategy", true},
		{"already capitalized", "Marketing strategy", "Marketing strategy", false},
		{"leading digit unchanged", "3 growth tactics", "3 growth tactics", false},
		{"empty value", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewEngine().Repair(tc.input, []Issue{IssueMissingCapitalization})
			if result.RepairedValue != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, result.RepairedValue)
			}
			if result.Repaired != tc.repaired {
				t.Errorf("expected repaired=%v, got %v", tc.repaired, result.Repaired)
			}
		})
	}
}

func TestRepair_Idempotence(t *testing.T) {
	e := NewEngine()
	allIssues := []Issue{
		IssueExcessWhitespace,
		IssueContainsHTMLTags,
		IssueMissingCapitalization,
	}

	inputs := []string{
		"  <b>AI</b> marketing strategy  ",
		"\tpodcast interview tips\n",
		"<p>content</p>",
		"already clean value",
	}
	for _, input := range inputs {
		first := e.Repair(input, allIssues)
		second := e.Repair(first.RepairedValue, allIssues)
		if second.Repaired {
			t.Errorf("repair of %q was not idempotent: second pass performed %v",
				input, second.Actions)
		}
		if second.RepairedValue != first.RepairedValue {
			t.Errorf("repair of %q changed on second pass: %q -> %q",
				input, first.RepairedValue, second.RepairedValue)
		}
	}
}

func TestRepair_UnknownIssueIgnored(t *testing.T) {
	e := NewEngine()
	result := e.Repair("some value!!", []Issue{Issue("excessive_punctuation")})
	if result.Repaired {
		t.Error("issues outside the allow-list must never be repaired")
	}
	if result.RepairedValue != "some value!!" {
		t.Errorf("value should be unchanged, got %q", result.RepairedValue)
	}
}

func TestRepair_NoIssues(t *testing.T) {
	result := NewEngine().Repair("value", nil)
	if result.Repaired || len(result.Actions) != 0 {
		t.Error("repair with no issues should be a no-op")
	}
	if result.RepairedValue != "value" {
		t.Errorf("expected unchanged value, got %q", result.RepairedValue)
	}
}
