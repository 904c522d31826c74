// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package quality computes a 0-100 quality score for a field value as
// a weighted sum of independent, capped factors. Scoring is heuristic
// by design: simple token and pattern checks, no semantic analysis.
package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Score thresholds for quality levels.
const (
	ThresholdExcellent = 90
	ThresholdGood      = 70
	ThresholdFair      = 50
)

// Factor names used as breakdown keys.
const (
	FactorLength           = "length"
	FactorWordCount        = "word_count"
	FactorProfessionalism  = "professionalism"
	FactorCompleteness     = "completeness"
	FactorKeywordRelevance = "keyword_relevance"
)

// Quality is the scoring output: a clamped total, a level derived from
// fixed thresholds, and the per-factor breakdown that sums to the total.
type Quality struct {
	Score     int
	Level     string
	Breakdown map[string]int
	Feedback  []string
}

// Config holds the scoring bands. Zero values are replaced with the
// defaults from DefaultConfig.
type Config struct {
	MinLength     int // hard lower bound, below it the floor score applies
	MaxLength     int // hard upper bound
	OptimalMin    int // optimal window start
	OptimalMax    int // optimal window end
	RequiredIndex int // the only field index eligible for the completeness bonus
}

// DefaultConfig returns the production scoring bands.
func DefaultConfig() Config {
	return Config{
		MinLength:     3,
		MaxLength:     100,
		OptimalMin:    20,
		OptimalMax:    60,
		RequiredIndex: 0,
	}
}

// Scorer computes quality scores. It is a pure function over its
// inputs; the primary keyword set is fixed at construction from the
// external-origin values.
type Scorer struct {
	config          Config
	primaryKeywords map[string]bool
	doubleSpace     *regexp.Regexp
	repeatedBang    *regexp.Regexp
	leadingCapital  *regexp.Regexp
}

// NewScorer creates a scorer with the given config and primary keywords.
func NewScorer(config Config, primaryKeywords []string) *Scorer {
	keywords := make(map[string]bool, len(primaryKeywords))
	for _, kw := range primaryKeywords {
		keywords[strings.ToLower(kw)] = true
	}
	return &Scorer{
		config:          config,
		primaryKeywords: keywords,
		doubleSpace:     regexp.MustCompile(`\s{2,}`),
		repeatedBang:    regexp.MustCompile(`!{2,}`),
		leadingCapital:  regexp.MustCompile(`^[A-Z]`),
	}
}

// HasKeywords reports whether any primary keywords were extracted.
func (s *Scorer) HasKeywords() bool {
	return len(s.primaryKeywords) > 0
}

// Score computes the quality of a value. Scoring never errors: an
// empty value short-circuits to score 0 with a single feedback entry.
// The returned suggestions describe each under-performing factor.
func (s *Scorer) Score(value string, fieldIndex int) (Quality, []string) {
	quality := Quality{
		Level: LevelPoor,
		Breakdown: map[string]int{
			FactorLength:           0,
			FactorWordCount:        0,
			FactorProfessionalism:  0,
			FactorCompleteness:     0,
			FactorKeywordRelevance: 0,
		},
	}

	if value == "" {
		quality.Feedback = append(quality.Feedback, "Topic is empty")
		return quality, nil
	}

	var suggestions []string

	// Length scoring counts characters, not bytes
	length := utf8.RuneCountInString(value)
	switch {
	case length >= s.config.OptimalMin && length <= s.config.OptimalMax:
		quality.Breakdown[FactorLength] = 40
		quality.Feedback = append(quality.Feedback, "Excellent length")
	case length >= s.config.MinLength && length <= s.config.MaxLength:
		quality.Breakdown[FactorLength] = 25
		quality.Feedback = append(quality.Feedback, "Good length")
	default:
		quality.Breakdown[FactorLength] = 10
		if length < s.config.OptimalMin {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider expanding to %d-%d characters for optimal impact",
				s.config.OptimalMin, s.config.OptimalMax))
		} else {
			suggestions = append(suggestions, fmt.Sprintf(
				"Consider shortening to %d-%d characters for better readability",
				s.config.OptimalMin, s.config.OptimalMax))
		}
	}

	// Word count scoring
	wordCount := len(strings.Fields(value))
	switch {
	case wordCount >= 2 && wordCount <= 8:
		quality.Breakdown[FactorWordCount] = 30
		quality.Feedback = append(quality.Feedback, "Optimal word count")
	case wordCount >= 1 && wordCount <= 12:
		quality.Breakdown[FactorWordCount] = 15
	default:
		quality.Breakdown[FactorWordCount] = 5
		suggestions = append(suggestions, "Aim for 2-8 words for optimal readability")
	}

	// Professionalism: three independent checks worth 10 points each
	professionalism := 0
	if s.leadingCapital.MatchString(value) {
		professionalism += 10
	}
	if !s.doubleSpace.MatchString(value) {
		professionalism += 10
	}
	if !s.repeatedBang.MatchString(value) {
		professionalism += 10
	}
	quality.Breakdown[FactorProfessionalism] = professionalism
	if professionalism < 30 {
		suggestions = append(suggestions,
			"Improve professionalism: capitalize first letter, avoid double spaces and excessive punctuation")
	}

	// Completeness bonus applies only to the required field
	if fieldIndex == s.config.RequiredIndex {
		quality.Breakdown[FactorCompleteness] = 10
	}

	// Keyword relevance: simple case-insensitive token membership
	matched := s.matchKeywords(value)
	quality.Breakdown[FactorKeywordRelevance] = min(15, 5*matched)
	if matched == 0 && s.HasKeywords() {
		suggestions = append(suggestions,
			"Consider including keywords related to your expertise areas")
	}

	// Total is clamped to [0,100]; level follows from fixed thresholds
	total := 0
	for _, points := range quality.Breakdown {
		total += points
	}
	quality.Score = clamp(total, 0, 100)
	quality.Level = LevelForScore(quality.Score)

	return quality, suggestions
}

// matchKeywords counts how many of the value's tokens are primary keywords.
func (s *Scorer) matchKeywords(value string) int {
	if len(s.primaryKeywords) == 0 {
		return 0
	}
	matched := 0
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(value)) {
		word = stripNonLetters(word)
		if len(word) < 3 || seen[word] {
			continue
		}
		seen[word] = true
		if s.primaryKeywords[word] {
			matched++
		}
	}
	return matched
}

// LevelForScore maps a score to its quality level via the fixed thresholds.
func LevelForScore(score int) string {
	switch {
	case score >= ThresholdExcellent:
		return LevelExcellent
	case score >= ThresholdGood:
		return LevelGood
	case score >= ThresholdFair:
		return LevelFair
	default:
		return LevelPoor
	}
}

// Level name aliases so callers can avoid importing the field package
// for comparisons.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"
)

func stripNonLetters(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
