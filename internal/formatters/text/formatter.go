// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"topickit/internal/field"
	"topickit/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder

	if len(report.Results) == 0 {
		return "No topics to report.", nil
	}

	f.appendHeaders(&builder, report.Results, options)
	for _, result := range report.Results {
		if options.Verbose {
			f.appendDetailedResult(&builder, result, options)
		} else {
			f.appendSummaryLine(&builder, result, report.Results, options)
		}
	}

	f.appendSummary(&builder, report.Summary, options)
	return builder.String(), nil
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, results []field.ValidationResult, options formatters.FormatterOptions) {
	if options.Verbose {
		return
	}
	valueWidth := f.calculateValueColumnWidth(results)
	headerStr := fmt.Sprintf("%-7s %-11s %-7s %-*s %s\n",
		"TOPIC", "LEVEL", "SCORE", valueWidth, "VALUE", "FINDINGS")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprintf("%-7s %-11s %-7s %-*s %s\n",
			"TOPIC", "LEVEL", "SCORE", valueWidth, "VALUE", "FINDINGS")
	}
	builder.WriteString(headerStr)

	totalWidth := 7 + 1 + 11 + 1 + 7 + 1 + valueWidth + 1 + 8
	separator := strings.Repeat("-", totalWidth) + "\n"
	if !options.NoColor {
		separator = f.colors["white"].Sprint(strings.Repeat("-", totalWidth) + "\n")
	}
	builder.WriteString(separator)
}

// calculateValueColumnWidth calculates the optimal width for the value column
func (f *Formatter) calculateValueColumnWidth(results []field.ValidationResult) int {
	maxWidth := 7 // Minimum width for "(empty)"
	for _, result := range results {
		runeCount := len([]rune(result.Value))
		if runeCount > maxWidth {
			maxWidth = runeCount
		}
	}
	// Cap at 40 characters for readability
	if maxWidth > 40 {
		maxWidth = 40
	}
	return maxWidth
}

// appendSummaryLine adds a single line summary for one field
func (f *Formatter) appendSummaryLine(builder *strings.Builder, result field.ValidationResult, allResults []field.ValidationResult, options formatters.FormatterOptions) {
	levelColor := f.levelColor(result.Quality.Level)

	topicStr := fmt.Sprintf("%-7s", fmt.Sprintf("#%d", result.FieldIndex+1))
	if !options.NoColor {
		topicStr = f.colors["magenta"].Sprintf("%-7s", fmt.Sprintf("#%d", result.FieldIndex+1))
	}

	levelStr := fmt.Sprintf("[%-9s]", strings.ToUpper(result.Quality.Level))
	if !options.NoColor {
		levelStr = levelColor.Sprintf("[%-9s]", strings.ToUpper(result.Quality.Level))
	}

	scoreStr := fmt.Sprintf("%3d/100", result.Quality.Score)
	if !options.NoColor {
		scoreStr = f.colors["blue"].Sprintf("%3d/100", result.Quality.Score)
	}

	targetWidth := f.calculateValueColumnWidth(allResults)
	value := result.Value
	if value == "" {
		value = "(empty)"
	}
	runes := []rune(value)
	if len(runes) > targetWidth {
		value = string(runes[:targetWidth-3]) + "..."
	}
	if padding := targetWidth - len([]rune(value)); padding > 0 {
		value += strings.Repeat(" ", padding)
	}

	findings := f.findingsSummary(result)
	findingsStr := findings
	if !options.NoColor {
		if len(result.Errors) > 0 {
			findingsStr = f.colors["red"].Sprint(findings)
		} else if len(result.Warnings) > 0 {
			findingsStr = f.colors["yellow"].Sprint(findings)
		} else {
			findingsStr = f.colors["green"].Sprint(findings)
		}
	}

	fmt.Fprintf(builder, "%s %s %s %s %s\n", topicStr, levelStr, scoreStr, value, findingsStr)
}

// appendDetailedResult adds detailed per-field information
func (f *Formatter) appendDetailedResult(builder *strings.Builder, result field.ValidationResult, options formatters.FormatterOptions) {
	title := fmt.Sprintf("=== Topic %d ===\n", result.FieldIndex+1)
	if !options.NoColor {
		f.colors["white"].Fprint(builder, title)
	} else {
		builder.WriteString(title)
	}

	f.appendLabelled(builder, "Value", result.Value, options)
	levelColor := f.levelColor(result.Quality.Level)
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "Quality: ")
		f.colors["white"].Fprintf(builder, "%d/100 ", result.Quality.Score)
		levelColor.Fprintf(builder, "(%s)\n", result.Quality.Level)
	} else {
		fmt.Fprintf(builder, "Quality: %d/100 (%s)\n", result.Quality.Score, result.Quality.Level)
	}

	if len(result.Quality.Breakdown) > 0 {
		f.appendLabelled(builder, "Breakdown", "", options)
		for _, factor := range []string{"length", "word_count", "professionalism", "completeness", "keyword_relevance"} {
			if points, ok := result.Quality.Breakdown[factor]; ok {
				fmt.Fprintf(builder, "- %s: %d\n", f.formatFactorName(factor), points)
			}
		}
	}

	if result.AutoRepair.Performed {
		f.appendLabelled(builder, "Auto-repaired", strings.Join(result.AutoRepair.Actions, "; "), options)
		f.appendLabelled(builder, "Original value", result.AutoRepair.OriginalValue, options)
	}

	f.appendList(builder, "Errors", result.Errors, "red", options)
	f.appendList(builder, "Warnings", result.Warnings, "yellow", options)
	f.appendList(builder, "Suggestions", result.Suggestions, "cyan", options)

	fmt.Fprintln(builder)
}

// appendSummary adds the collection-level summary block
func (f *Formatter) appendSummary(builder *strings.Builder, summary formatters.Summary, options formatters.FormatterOptions) {
	fmt.Fprintln(builder)
	title := "=== Collection Summary ===\n"
	if !options.NoColor {
		f.colors["white"].Fprint(builder, title)
	} else {
		builder.WriteString(title)
	}

	f.appendLabelled(builder, "Topics", fmt.Sprintf("%d (%d valid)", summary.FieldCount, summary.ValidCount), options)

	overallColor := f.levelColor(summary.OverallLevel)
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "Overall quality: ")
		f.colors["white"].Fprintf(builder, "%d/100 ", summary.AverageScore)
		overallColor.Fprintf(builder, "(%s)\n", summary.OverallLevel)
	} else {
		fmt.Fprintf(builder, "Overall quality: %d/100 (%s)\n", summary.AverageScore, summary.OverallLevel)
	}

	if summary.RepairCount > 0 {
		f.appendLabelled(builder, "Auto-repaired", fmt.Sprintf("%d", summary.RepairCount), options)
	}
}

func (f *Formatter) appendLabelled(builder *strings.Builder, label, value string, options formatters.FormatterOptions) {
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "%s: ", label)
		f.colors["white"].Fprintf(builder, "%s\n", value)
	} else {
		fmt.Fprintf(builder, "%s: %s\n", label, value)
	}
}

func (f *Formatter) appendList(builder *strings.Builder, label string, items []string, colorName string, options formatters.FormatterOptions) {
	if len(items) == 0 {
		return
	}
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "%s:\n", label)
	} else {
		fmt.Fprintf(builder, "%s:\n", label)
	}
	for _, item := range items {
		if !options.NoColor {
			fmt.Fprintf(builder, "- ")
			f.colors[colorName].Fprintf(builder, "%s\n", item)
		} else {
			fmt.Fprintf(builder, "- %s\n", item)
		}
	}
}

// findingsSummary compacts the result's findings into a count string
func (f *Formatter) findingsSummary(result field.ValidationResult) string {
	var parts []string
	if len(result.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", len(result.Errors)))
	}
	if len(result.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", len(result.Warnings)))
	}
	if result.AutoRepair.Performed {
		parts = append(parts, "repaired")
	}
	if len(parts) == 0 {
		return "ok"
	}
	return strings.Join(parts, ", ")
}

// formatFactorName formats a factor name from snake_case to Title Case
func (f *Formatter) formatFactorName(factor string) string {
	words := strings.Split(factor, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// levelColor maps a quality level to its display color
func (f *Formatter) levelColor(level string) *color.Color {
	switch level {
	case field.LevelExcellent:
		return f.colors["green"]
	case field.LevelGood:
		return f.colors["cyan"]
	case field.LevelFair:
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
