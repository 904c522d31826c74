// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package uniqueness detects exact and near-duplicate values among
// sibling fields. Near-duplicate detection uses token-set Jaccard
// similarity over whitespace tokens, not semantic comparison.
package uniqueness

import "strings"

// SimilarityThreshold is the Jaccard similarity above which two values
// are flagged as near-duplicates.
const SimilarityThreshold = 0.8

// Result holds the warnings and suggestions from one uniqueness check.
type Result struct {
	Warnings    []string
	Suggestions []string
}

// Analyzer performs duplicate and near-duplicate checks. It is a pure
// function over the inputs it receives and never mutates shared state.
type Analyzer struct {
	threshold float64
}

// NewAnalyzer creates an analyzer with the default similarity threshold.
func NewAnalyzer() *Analyzer {
	return &Analyzer{threshold: SimilarityThreshold}
}

// NewAnalyzerWithThreshold creates an analyzer with a custom similarity
// threshold in (0,1]. Values outside that range fall back to the default.
func NewAnalyzerWithThreshold(threshold float64) *Analyzer {
	if threshold <= 0 || threshold > 1 {
		threshold = SimilarityThreshold
	}
	return &Analyzer{threshold: threshold}
}

// Check compares value against every sibling's current value. The check
// is evaluated only from the perspective of the field being validated;
// validating the sibling produces the symmetric warning there. An empty
// value is never reported as a duplicate.
func (a *Analyzer) Check(value string, fieldIndex int, siblingValues map[int]string) Result {
	var result Result
	if strings.TrimSpace(value) == "" {
		return result
	}

	normalized := normalize(value)
	exactDuplicate := false
	nearDuplicate := false

	for index, sibling := range siblingValues {
		if index == fieldIndex || strings.TrimSpace(sibling) == "" {
			continue
		}
		if normalize(sibling) == normalized {
			exactDuplicate = true
			continue
		}
		if Similarity(strings.ToLower(value), strings.ToLower(sibling)) > a.threshold {
			nearDuplicate = true
		}
	}

	if exactDuplicate {
		result.Warnings = append(result.Warnings, "This topic appears to be a duplicate")
		result.Suggestions = append(result.Suggestions,
			"Consider making this topic more specific or removing the duplicate")
	}
	if nearDuplicate {
		result.Warnings = append(result.Warnings, "This topic is very similar to another topic")
		result.Suggestions = append(result.Suggestions,
			"Consider diversifying your topics to cover different areas")
	}
	return result
}

// Similarity computes token-set Jaccard similarity between two strings:
// |intersection| / |union| over whitespace-delimited tokens. Identical
// strings score 1; an empty string against anything scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	tokensA := tokenSet(a)
	tokensB := tokenSet(b)

	intersection := 0
	for token := range tokensA {
		if tokensB[token] {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
