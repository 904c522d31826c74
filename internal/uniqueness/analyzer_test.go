// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package uniqueness

import (
	"strings"
	"testing"
)

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "podcast marketing tips", "podcast marketing tips", 1},
		{"disjoint", "podcast marketing", "revenue growth", 0},
		{"partial overlap", "podcast marketing", "podcast growth", 1.0 / 3.0},
		{"empty left", "", "podcast", 0},
		{"empty right", "podcast", "", 0},
		{"both empty", "", "", 0},
		{"high overlap", "ai marketing strategy tips", "ai marketing strategy tricks", 3.0 / 5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(tc.a, tc.b)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestCheck_ExactDuplicate(t *testing.T) {
	a := NewAnalyzer()

	siblings := map[int]string{
		0: "Podcast Marketing Tips",
		1: "  podcast marketing tips ",
		2: "Revenue growth",
	}

	// Case- and whitespace-insensitive equality, from both perspectives.
	for _, index := range []int{0, 1} {
		result := a.Check(siblings[index], index, siblings)
		if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "duplicate") {
			t.Errorf("field %d: expected duplicate warning, got %v", index, result.Warnings)
		}
		if len(result.Suggestions) == 0 {
			t.Errorf("field %d: expected a suggestion alongside the warning", index)
		}
	}

	result := a.Check(siblings[2], 2, siblings)
	if len(result.Warnings) != 0 {
		t.Errorf("distinct field should have no warnings, got %v", result.Warnings)
	}
}

func TestCheck_NearDuplicate(t *testing.T) {
	a := NewAnalyzer()

	// Token sets are a strict superset: Jaccard = 9/10 = 0.9.
	siblings := map[int]string{
		0: "how to grow a business podcast from zero listeners",
		1: "how to grow a business podcast from zero listeners fast",
		2: "completely different subject",
	}

	result := a.Check(siblings[0], 0, siblings)
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "very similar") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected near-duplicate warning, got %v", result.Warnings)
	}
}

func TestCheck_BelowThresholdNotFlagged(t *testing.T) {
	a := NewAnalyzer()

	// Jaccard = 2/4 = 0.5, below the 0.8 threshold.
	siblings := map[int]string{
		0: "podcast marketing tips",
		1: "podcast marketing growth strategies",
	}
	result := a.Check(siblings[0], 0, siblings)
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings below threshold, got %v", result.Warnings)
	}
}

func TestCheck_EmptyValuesIgnored(t *testing.T) {
	a := NewAnalyzer()

	siblings := map[int]string{0: "", 1: "", 2: "Podcast tips"}

	if result := a.Check("", 0, siblings); len(result.Warnings) != 0 {
		t.Errorf("empty value should never be a duplicate, got %v", result.Warnings)
	}
	if result := a.Check("Podcast tips", 2, siblings); len(result.Warnings) != 0 {
		t.Errorf("empty siblings should be ignored, got %v", result.Warnings)
	}
}
