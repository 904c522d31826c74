// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validator orchestrates the per-field validation pipeline:
// structural checks, safe auto-repair, quality scoring, content policy
// checks, and uniqueness analysis, with per-field debouncing and
// result caching.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"topickit/internal/field"
	"topickit/internal/observability"
	"topickit/internal/policy"
	"topickit/internal/quality"
	"topickit/internal/repair"
	"topickit/internal/uniqueness"
)

// DefaultDebounce is the delay between a field edit and its validation
// when no override is configured.
const DefaultDebounce = 300 * time.Millisecond

// Events is the optional capability surface injected at construction.
// Nil members are simply not invoked; absence is configuration, not a
// runtime probe.
type Events struct {
	// OnResult fires when a validation pass completes.
	OnResult func(result field.ValidationResult)
	// OnAutoRepair fires when auto-repair changed a value.
	OnAutoRepair func(fieldIndex int, repair field.AutoRepair)
	// Notify carries user-facing messages: severity is one of
	// "success", "info", "warning", "error".
	Notify func(message, severity string)
}

// Options configures a Validator. Zero values fall back to defaults.
type Options struct {
	MinLength     int
	MaxLength     int
	OptimalMin    int
	OptimalMax    int
	RequiredIndex int
	AutoRepair    bool
	Debounce      time.Duration
	// SimilarityThreshold overrides the near-duplicate Jaccard
	// threshold when in (0,1].
	SimilarityThreshold float64
}

// DefaultOptions returns the production validation rules.
func DefaultOptions() Options {
	return Options{
		MinLength:     3,
		MaxLength:     100,
		OptimalMin:    20,
		OptimalMax:    60,
		RequiredIndex: 0,
		AutoRepair:    true,
		Debounce:      DefaultDebounce,
	}
}

// RepairRecord is one entry in the repair history kept for diagnostics.
type RepairRecord struct {
	Timestamp     time.Time
	FieldIndex    int
	OriginalValue string
	RepairedValue string
	Actions       []string
}

// Validator runs the validation pipeline over a shared field
// collection. It owns the result cache and the pending-timer table;
// it never writes field values.
type Validator struct {
	collection *field.Collection
	repairer   *repair.Engine
	scorer     *quality.Scorer
	analyzer   *uniqueness.Analyzer
	policy     policy.Policy
	observer   *observability.StandardObserver
	events     Events
	options    Options

	scheduler *Scheduler
	cache     *resultCache

	allowedChars *regexp.Regexp
	htmlTags     *regexp.Regexp
	leadingUpper *regexp.Regexp

	mu            sync.Mutex
	repairHistory []RepairRecord
}

// New creates a validator over the given collection. The scorer carries
// the primary keywords extracted from the origin values at load time;
// pol may be nil to disable content policy checks; observer may be nil.
func New(collection *field.Collection, scorer *quality.Scorer, pol policy.Policy, observer *observability.StandardObserver, events Events, options Options) *Validator {
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if options.MaxLength <= 0 {
		defaults := DefaultOptions()
		options.MinLength = defaults.MinLength
		options.MaxLength = defaults.MaxLength
		options.OptimalMin = defaults.OptimalMin
		options.OptimalMax = defaults.OptimalMax
	}
	return &Validator{
		collection:   collection,
		repairer:     repair.NewEngine(),
		scorer:       scorer,
		analyzer:     uniqueness.NewAnalyzerWithThreshold(options.SimilarityThreshold),
		policy:       pol,
		observer:     observer,
		events:       events,
		options:      options,
		scheduler:    NewScheduler(),
		cache:        newResultCache(),
		allowedChars: regexp.MustCompile(`^[a-zA-Z0-9\s\-.,!?'"()&]+$`),
		htmlTags:     regexp.MustCompile(`<[^>]*>`),
		leadingUpper: regexp.MustCompile(`^[A-Z]`),
	}
}

// Validate schedules a debounced validation of value for the field at
// index. A new call for the same index cancels the outstanding timer
// first, so intermediate keystrokes are coalesced and only the most
// recent value is validated. Validations for different indices proceed
// independently.
func (v *Validator) Validate(index int, value string) error {
	if _, err := v.collection.Get(index); err != nil {
		return err
	}

	v.collection.SetValidationState(index, field.StatePending)
	v.scheduler.Schedule(index, v.options.Debounce, func() {
		result := v.ValidateNow(index, value)
		if v.events.OnResult != nil {
			v.events.OnResult(result)
		}
	})
	return nil
}

// ValidateNow runs the pipeline synchronously and caches the result.
// A cached result for the same (index, value) pair is returned as-is;
// the field's validation state settles either way, so a debounced
// re-validation of a cached value never leaves the field pending.
func (v *Validator) ValidateNow(index int, value string) field.ValidationResult {
	if cached, ok := v.cache.get(index, value); ok {
		v.settleState(index, cached)
		return cached
	}

	var finishTiming func(bool, map[string]interface{})
	if v.observer != nil {
		finishTiming = v.observer.StartTiming("field_validator", "validate", index)
	}
	var finishStep func(success bool, details string)
	if v.observer != nil && v.observer.DebugObserver != nil {
		finishStep = v.observer.DebugObserver.StartStep("field_validator", "validate", index)
	}

	result := v.runPipeline(index, value)

	v.cache.put(index, value, result)
	v.settleState(index, result)

	if finishStep != nil {
		v.observer.DebugObserver.LogMetric("field_validator", "quality_score", result.Quality.Score)
		finishStep(result.IsValid, fmt.Sprintf("level=%s", result.Quality.Level))
	}
	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"is_valid":      result.IsValid,
			"quality_score": result.Quality.Score,
			"errors_count":  len(result.Errors),
			"auto_repaired": result.AutoRepair.Performed,
		})
	}
	return result
}

// settleState moves the field out of pending to match the result.
func (v *Validator) settleState(index int, result field.ValidationResult) {
	state := field.StateValid
	if !result.IsValid {
		state = field.StateInvalid
	}
	v.collection.SetValidationState(index, state)
}

// ValidateAll synchronously validates every field's current value, in
// index order. One invalid field never prevents validating the others.
func (v *Validator) ValidateAll() []field.ValidationResult {
	fields := v.collection.Fields()
	results := make([]field.ValidationResult, 0, len(fields))
	for _, f := range fields {
		results = append(results, v.ValidateNow(f.Index, f.Value))
	}
	return results
}

// Invalidate drops the cached result for index. Call after any write
// to the field that bypasses Validate.
func (v *Validator) Invalidate(index int) {
	v.cache.invalidate(index)
}

// InvalidateAll drops every cached result, for whole-collection
// mutations.
func (v *Validator) InvalidateAll() {
	v.cache.clear()
}

// PendingValidation reports whether a debounced validation is
// outstanding for index.
func (v *Validator) PendingValidation(index int) bool {
	return v.scheduler.Pending(index)
}

// RepairHistory returns a copy of the performed auto-repairs.
func (v *Validator) RepairHistory() []RepairRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	history := make([]RepairRecord, len(v.repairHistory))
	copy(history, v.repairHistory)
	return history
}

// Close cancels all pending validation timers. The validator remains
// usable for synchronous validation afterwards.
func (v *Validator) Close() {
	v.scheduler.Close()
}

// runPipeline executes the strictly ordered validation steps.
func (v *Validator) runPipeline(index int, value string) field.ValidationResult {
	result := field.ValidationResult{
		FieldIndex: index,
		Value:      value,
		AutoRepair: field.AutoRepair{
			OriginalValue: value,
			RepairedValue: value,
		},
	}

	// Step 1: basic structural validation on the original value
	issues := v.basicValidation(value, index, &result)

	// Step 2: safe auto-repair; every later step sees the repaired value
	if v.options.AutoRepair && len(issues) > 0 {
		repairResult := v.repairer.Repair(value, issues)
		if repairResult.Repaired {
			result.AutoRepair = field.AutoRepair{
				Performed:     true,
				Actions:       repairResult.Actions,
				OriginalValue: repairResult.OriginalValue,
				RepairedValue: repairResult.RepairedValue,
			}
			value = repairResult.RepairedValue
			result.Value = value
			v.recordRepair(index, result.AutoRepair)
			if v.events.OnAutoRepair != nil {
				v.events.OnAutoRepair(index, result.AutoRepair)
			}
		}
	}

	// Step 3: quality scoring
	scored, scoreSuggestions := v.scorer.Score(value, index)
	result.Quality = field.Quality{
		Score:     scored.Score,
		Level:     scored.Level,
		Breakdown: scored.Breakdown,
		Feedback:  scored.Feedback,
	}
	result.Suggestions = append(result.Suggestions, scoreSuggestions...)

	// Step 4: content-specific checks
	if v.policy != nil && value != "" {
		findings := v.policy.Check(value)
		result.Errors = append(result.Errors, findings.Errors...)
		result.Warnings = append(result.Warnings, findings.Warnings...)
		result.Suggestions = append(result.Suggestions, findings.Suggestions...)
	}

	// Step 5: uniqueness against the siblings' current values
	siblings := make(map[int]string)
	for _, f := range v.collection.Fields() {
		siblings[f.Index] = f.Value
	}
	unique := v.analyzer.Check(value, index, siblings)
	result.Warnings = append(result.Warnings, unique.Warnings...)
	result.Suggestions = append(result.Suggestions, unique.Suggestions...)

	result.IsValid = len(result.Errors) == 0
	return result
}

// basicValidation applies the hard structural rules and detects
// repairable issues for step 2.
func (v *Validator) basicValidation(value string, index int, result *field.ValidationResult) []repair.Issue {
	var issues []repair.Issue

	if value == "" {
		if index == v.options.RequiredIndex {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Topic %d is required and cannot be empty", v.options.RequiredIndex+1))
		} else {
			result.Warnings = append(result.Warnings, "Topic is empty")
		}
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < v.options.MinLength {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Topic too short (minimum %d characters)", v.options.MinLength))
	} else if length > v.options.MaxLength {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Topic too long (maximum %d characters)", v.options.MaxLength))
	}

	if v.htmlTags.MatchString(value) {
		issues = append(issues, repair.IssueContainsHTMLTags)
		result.Warnings = append(result.Warnings, "Contains HTML tags that will be removed")
	}

	if !v.allowedChars.MatchString(value) {
		result.Warnings = append(result.Warnings,
			"Contains special characters that may not display correctly")
	}

	if trimmed := strings.TrimSpace(value); trimmed != value {
		issues = append(issues, repair.IssueExcessWhitespace)
	}

	if !v.leadingUpper.MatchString(value) {
		issues = append(issues, repair.IssueMissingCapitalization)
		result.Warnings = append(result.Warnings, "Consider capitalizing the first letter")
	}

	return issues
}

func (v *Validator) recordRepair(index int, autoRepair field.AutoRepair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.repairHistory = append(v.repairHistory, RepairRecord{
		Timestamp:     time.Now(),
		FieldIndex:    index,
		OriginalValue: autoRepair.OriginalValue,
		RepairedValue: autoRepair.RepairedValue,
		Actions:       autoRepair.Actions,
	})
}
