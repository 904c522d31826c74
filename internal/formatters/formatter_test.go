// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"testing"

	"topickit/internal/field"
)

func sampleResults() []field.ValidationResult {
	return []field.ValidationResult{
		{
			FieldIndex: 0,
			Value:      "Digital Marketing Strategy",
			IsValid:    true,
			Quality:    field.Quality{Score: 95, Level: field.LevelExcellent},
			AutoRepair: field.AutoRepair{Performed: true, Actions: []string{"Trimmed excess whitespace"}},
		},
		{
			FieldIndex: 1,
			Value:      "Podcasting",
			IsValid:    true,
			Quality:    field.Quality{Score: 75, Level: field.LevelGood},
		},
		{
			FieldIndex: 2,
			Value:      "",
			IsValid:    false,
			Errors:     []string{"Topic 1 is required and cannot be empty"},
			Quality:    field.Quality{Score: 0, Level: field.LevelPoor},
		},
	}
}

func TestNewReportSummary(t *testing.T) {
	report := NewReport(sampleResults())

	if report.Summary.FieldCount != 3 {
		t.Errorf("FieldCount = %d, want 3", report.Summary.FieldCount)
	}
	if report.Summary.ValidCount != 2 {
		t.Errorf("ValidCount = %d, want 2", report.Summary.ValidCount)
	}
	if report.Summary.RepairCount != 1 {
		t.Errorf("RepairCount = %d, want 1", report.Summary.RepairCount)
	}
	// (95 + 75 + 0) / 3 = 56
	if report.Summary.AverageScore != 56 {
		t.Errorf("AverageScore = %d, want 56", report.Summary.AverageScore)
	}
	if report.Summary.OverallLevel != field.LevelFair {
		t.Errorf("OverallLevel = %q, want %q", report.Summary.OverallLevel, field.LevelFair)
	}
	if report.Summary.LevelCounts[field.LevelExcellent] != 1 {
		t.Errorf("LevelCounts[excellent] = %d, want 1", report.Summary.LevelCounts[field.LevelExcellent])
	}
}

func TestNewReportEmpty(t *testing.T) {
	report := NewReport(nil)
	if report.Summary.AverageScore != 0 {
		t.Errorf("AverageScore = %d, want 0", report.Summary.AverageScore)
	}
	if report.Summary.OverallLevel != field.LevelPoor {
		t.Errorf("OverallLevel = %q, want %q", report.Summary.OverallLevel, field.LevelPoor)
	}
}

type stubFormatter struct{ name string }

func (s stubFormatter) Format(Report, FormatterOptions) (string, error) { return s.name, nil }
func (s stubFormatter) Name() string                                    { return s.name }
func (s stubFormatter) Description() string                             { return "stub" }
func (s stubFormatter) FileExtension() string                           { return ".stub" }

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stubFormatter{name: "stub"})

	if _, exists := registry.Get("stub"); !exists {
		t.Error("registered formatter not found")
	}
	if _, exists := registry.Get("missing"); exists {
		t.Error("unregistered formatter found")
	}
	if names := registry.List(); len(names) != 1 || names[0] != "stub" {
		t.Errorf("List() = %v, want [stub]", names)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export("no-such-format", NewReport(nil), FormatterOptions{})
	if err == nil {
		t.Error("expected error for unknown format")
	}
}
