// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// FactorInfo contains standardized information about a quality factor
type FactorInfo struct {
	Name                string   // Name of the factor (e.g., "length")
	ShortDescription    string   // Short description for the factors list
	DetailedDescription string   // Detailed description of what the factor measures
	MaxPoints           int      // Maximum contribution to the 0-100 score
	Bands               []string // Scoring bands, best first
	Suggestions         []string // Suggestions shown when the factor under-performs
}

// System manages help content for the application
type System struct {
	factors map[string]FactorInfo
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	s := &System{
		factors: make(map[string]FactorInfo),
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"positive": color.New(color.FgGreen),
			"negative": color.New(color.FgRed),
			"warning":  color.New(color.FgYellow),
			"example":  color.New(color.FgMagenta),
		},
	}
	for _, info := range defaultFactors() {
		s.factors[strings.ToLower(info.Name)] = info
	}
	return s
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Topickit - Topic Validation and Quality Scoring Tool")
	fmt.Println("====================================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  topickit -topics <path-to-yaml> [options]")
	fmt.Println("  topickit [options] \"Topic one\" \"Topic two\" ...")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  -topics\t<path>\tPath to a YAML file with a 'topics:' list of initial values")
	fmt.Fprintln(w, "  -config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  -profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  -list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  -format\t<format>\tOutput format: text, json, yaml (default: text)")
	fmt.Fprintln(w, "  -fields\t<count>\tNumber of topic fields in the collection (default: 5)")
	fmt.Fprintln(w, "  -policy-file\t<path>\tPath to a YAML content policy rules file")
	fmt.Fprintln(w, "  -auto-repair\t\tAutomatically repair safe issues (default: true, use -auto-repair=false to disable)")
	fmt.Fprintln(w, "  -bulk\t<op>\tRun a bulk operation before reporting: sync, clear, or reset")
	fmt.Fprintln(w, "  -yes\t\tSkip interactive confirmation of bulk operations")
	fmt.Fprintln(w, "  -verbose\t\tDisplay detailed information for each topic")
	fmt.Fprintln(w, "  -debug\t\tEnable debug logging of the validation flow")
	fmt.Fprintln(w, "  -output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  -no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  -quiet\t\tSuppress progress output (useful for scripts and CI/CD)")
	fmt.Fprintln(w, "  -version\t\tShow version information")
	fmt.Fprintln(w, "  -help\t\tShow this help message")
	fmt.Fprintln(w, "  -help factors\t\tList all quality scoring factors")
	fmt.Fprintln(w, "  -help <factor>\t\tShow detailed help for a specific factor")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	fmt.Println("  Basic Usage:")
	h.colors["example"].Println("    topickit -topics topics.yaml")
	h.colors["example"].Println("    topickit -topics topics.yaml -verbose -format json")
	fmt.Println("  Configuration and Profiles:")
	h.colors["example"].Println("    topickit -topics topics.yaml -config topickit.yaml -profile review")
	h.colors["example"].Println("    topickit -list-profiles -config topickit.yaml")
	fmt.Println("  Bulk Operations:")
	h.colors["example"].Println("    topickit -topics topics.yaml -bulk sync")
	h.colors["example"].Println("    topickit -topics topics.yaml -bulk clear -yes -quiet")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Default config: ~/.topickit/config.yaml")
	fmt.Println("  Project config: topickit.yaml or .topickit.yaml (in current directory)")
}

// ShowFactorsHelp displays information about all quality scoring factors
func (h *System) ShowFactorsHelp() {
	h.colors["title"].Println("Quality Scoring Factors")
	fmt.Println("=======================")
	fmt.Println()
	fmt.Println("Each topic is scored 0-100 as a weighted sum of independent factors:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  FACTOR\tMAX\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  ------\t---\t-----------")

	var names []string
	for name := range h.factors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := h.factors[name]
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%d\t%s\n", info.MaxPoints, info.ShortDescription)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Scores map to levels: excellent (90+), good (70+), fair (50+), poor (below 50).")
	fmt.Println()
	fmt.Println("For detailed information about a specific factor, use:")
	h.colors["example"].Println("  topickit -help <factor>")
}

// ShowFactorHelp displays detailed help for a specific quality factor
func (h *System) ShowFactorHelp(name string) bool {
	info, exists := h.factors[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Printf("Error: Factor '%s' not found.\n", name)
		fmt.Println("Use 'topickit -help factors' to see a list of scoring factors.")
		return false
	}

	h.colors["title"].Printf("%s Factor\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+7))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	h.colors["header"].Printf("MAXIMUM CONTRIBUTION: ")
	fmt.Printf("%d points\n\n", info.MaxPoints)

	if len(info.Bands) > 0 {
		h.colors["header"].Println("SCORING BANDS:")
		for _, band := range info.Bands {
			fmt.Print("  - ")
			h.colors["item"].Println(band)
		}
		fmt.Println()
	}

	if len(info.Suggestions) > 0 {
		h.colors["header"].Println("SUGGESTIONS SHOWN WHEN UNDER-PERFORMING:")
		for _, suggestion := range info.Suggestions {
			fmt.Print("  - ")
			h.colors["warning"].Println(suggestion)
		}
	}

	return true
}

func defaultFactors() []FactorInfo {
	return []FactorInfo{
		{
			Name:                "length",
			ShortDescription:    "Character count relative to the optimal window",
			DetailedDescription: "Measures the topic's character count against the configured bounds. Topics inside the optimal window (20-60 characters by default) earn the full points; topics inside the hard bounds earn a reduced amount; anything else earns the floor.",
			MaxPoints:           40,
			Bands: []string{
				"40 points: within the optimal window (20-60 characters)",
				"25 points: within the hard bounds (3-100 characters)",
				"10 points: outside the hard bounds",
			},
			Suggestions: []string{
				"Consider expanding to 20-60 characters for optimal impact",
				"Consider shortening to 20-60 characters for better readability",
			},
		},
		{
			Name:                "word_count",
			ShortDescription:    "Number of whitespace-separated words",
			DetailedDescription: "Counts whitespace-separated words. Short phrases read best as topics; single words and long sentences score lower.",
			MaxPoints:           30,
			Bands: []string{
				"30 points: 2-8 words",
				"15 points: 1-12 words",
				"5 points: anything else",
			},
			Suggestions: []string{
				"Aim for 2-8 words for optimal readability",
			},
		},
		{
			Name:                "professionalism",
			ShortDescription:    "Capitalization, spacing, and punctuation checks",
			DetailedDescription: "Three independent checks worth 10 points each: the topic starts with a capital letter, contains no doubled spaces, and contains no repeated exclamation marks.",
			MaxPoints:           30,
			Bands: []string{
				"10 points: starts with a capital letter",
				"10 points: no doubled whitespace",
				"10 points: no repeated exclamation marks",
			},
			Suggestions: []string{
				"Improve professionalism: capitalize first letter, avoid double spaces and excessive punctuation",
			},
		},
		{
			Name:                "completeness",
			ShortDescription:    "Bonus for filling the required topic",
			DetailedDescription: "A fixed bonus awarded only to the required topic (the first field) when it is filled in. Optional topics do not receive this bonus.",
			MaxPoints:           10,
			Bands: []string{
				"10 points: the required topic is non-empty",
			},
		},
		{
			Name:                "keyword_relevance",
			ShortDescription:    "Overlap with keywords from the original topic values",
			DetailedDescription: "Counts how many of the topic's words appear in the primary keyword set extracted from the original topic values, 5 points per distinct match.",
			MaxPoints:           15,
			Bands: []string{
				"5 points per distinct keyword match, capped at 15",
			},
			Suggestions: []string{
				"Consider including keywords related to your expertise areas",
			},
		},
	}
}
