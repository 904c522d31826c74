// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"strings"
	"time"

	"topickit/internal/field"
	"topickit/internal/quality"
)

// Report is the validation report rendered by formatters: one result
// per field plus a collection-level quality summary.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	Results     []field.ValidationResult `json:"results" yaml:"results"`
	Summary     Summary                  `json:"summary" yaml:"summary"`
}

// Summary aggregates per-field results into collection-level quality.
type Summary struct {
	FieldCount   int            `json:"field_count" yaml:"field_count"`
	ValidCount   int            `json:"valid_count" yaml:"valid_count"`
	AverageScore int            `json:"average_score" yaml:"average_score"`
	OverallLevel string         `json:"overall_level" yaml:"overall_level"`
	LevelCounts  map[string]int `json:"level_counts" yaml:"level_counts"`
	RepairCount  int            `json:"repair_count" yaml:"repair_count"`
}

// NewReport builds a report from validation results.
func NewReport(results []field.ValidationResult) Report {
	summary := Summary{
		FieldCount:  len(results),
		LevelCounts: make(map[string]int),
	}
	total := 0
	for _, r := range results {
		if r.IsValid {
			summary.ValidCount++
		}
		if r.AutoRepair.Performed {
			summary.RepairCount++
		}
		total += r.Quality.Score
		summary.LevelCounts[r.Quality.Level]++
	}
	if len(results) > 0 {
		summary.AverageScore = total / len(results)
	}
	summary.OverallLevel = quality.LevelForScore(summary.AverageScore)
	return Report{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Summary:     summary,
	}
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Whether to display per-field breakdowns and suggestions
	NoColor bool // Whether to disable colored output
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report according to the formatter's output format
	Format(report Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders the report in the named format via the default registry
func Export(format string, report Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	return formatter.Format(report, options)
}
