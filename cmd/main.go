// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"topickit/internal/bulkops"
	"topickit/internal/config"
	"topickit/internal/field"
	"topickit/internal/formatters"
	_ "topickit/internal/formatters/json"
	_ "topickit/internal/formatters/text"
	_ "topickit/internal/formatters/yaml"
	"topickit/internal/help"
	"topickit/internal/integrity"
	"topickit/internal/observability"
	"topickit/internal/origin"
	"topickit/internal/policy"
	"topickit/internal/quality"
	"topickit/internal/validator"
	"topickit/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat string
	verbose      bool
	debug        bool
	noColor      bool
	autoRepair   bool
	fieldCount   int
	policyFile   string
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format     string
	verbose    bool
	debug      bool
	noColor    bool
	autoRepair bool
	fieldCount int
	policyFile string
	debounce   time.Duration
	rules      quality.Config
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Verbose
	final.verbose = false // default fallback
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	final.debug = false // default fallback
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	final.noColor = false // default fallback
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Auto-repair
	final.autoRepair = true // default fallback
	if cfg != nil {
		final.autoRepair = cfg.Defaults.AutoRepair
	}
	if activeProfile != nil {
		final.autoRepair = activeProfile.AutoRepair
	}
	if isFlagSet("auto-repair") {
		final.autoRepair = flags.autoRepair
	}

	// Field count
	final.fieldCount = 5 // default fallback
	if cfg != nil && cfg.Defaults.FieldCount > 0 {
		final.fieldCount = cfg.Defaults.FieldCount
	}
	if isFlagSet("fields") && flags.fieldCount > 0 {
		final.fieldCount = flags.fieldCount
	}

	// Content policy file
	final.policyFile = "" // default fallback (built-in policy)
	if cfg != nil && cfg.Defaults.PolicyFile != "" {
		final.policyFile = cfg.Defaults.PolicyFile
	}
	if activeProfile != nil && activeProfile.PolicyFile != "" {
		final.policyFile = activeProfile.PolicyFile
	}
	if isFlagSet("policy-file") && flags.policyFile != "" {
		final.policyFile = flags.policyFile
	}

	// Debounce and scoring rules come from the config file only
	final.debounce = 300 * time.Millisecond
	final.rules = quality.DefaultConfig()
	if cfg != nil {
		if cfg.Defaults.DebounceMs > 0 {
			final.debounce = time.Duration(cfg.Defaults.DebounceMs) * time.Millisecond
		}
		final.rules = quality.Config{
			MinLength:     cfg.Rules.MinLength,
			MaxLength:     cfg.Rules.MaxLength,
			OptimalMin:    cfg.Rules.OptimalMin,
			OptimalMax:    cfg.Rules.OptimalMax,
			RequiredIndex: 0,
		}
	}

	return final
}

// handleProfiles handles profile listing and selection
func handleProfiles(cfg *config.Config, listProfiles bool, profileName string) *config.Profile {
	if listProfiles {
		profiles := cfg.ListProfiles()
		if len(profiles) == 0 {
			fmt.Println("No profiles defined.")
		} else {
			fmt.Println("Available profiles:")
			for _, name := range profiles {
				profile := cfg.GetProfile(name)
				if profile != nil && profile.Description != "" {
					fmt.Printf("  - %s: %s\n", name, profile.Description)
				} else {
					fmt.Printf("  - %s\n", name)
				}
			}
		}
		os.Exit(0)
	}

	if profileName == "" {
		return nil
	}
	activeProfile := cfg.GetProfile(profileName)
	if activeProfile == nil {
		fmt.Fprintf(os.Stderr, "Error: profile '%s' not found in config file\n", profileName)
		fmt.Fprintf(os.Stderr, "Check available profiles with -list-profiles\n")
		os.Exit(1)
	}
	return activeProfile
}

// loadTopics resolves the initial topic values from the -topics file or
// positional arguments.
func loadTopics(ctx context.Context, topicsFile string, args []string) ([]string, origin.Source, error) {
	if topicsFile != "" {
		source := origin.NewFileSource(topicsFile)
		values, err := source.FetchValues(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("reading topics file: %w", err)
		}
		return values, source, nil
	}
	if len(args) > 0 {
		return args, origin.NewStaticSource(args), nil
	}
	return nil, nil, nil
}

// isTerminal reports whether the file is attached to an interactive terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// confirmBulkOperation prompts for interactive confirmation of a
// previewed bulk operation.
func confirmBulkOperation(op bulkops.Operation, preview bulkops.Preview, assumeYes bool) bool {
	fmt.Fprintf(os.Stderr, "Requested bulk operation: %s\n", op)
	for _, warning := range preview.Warnings {
		fmt.Fprintf(os.Stderr, "  %s\n", warning)
	}
	if preview.Diff != "" {
		fmt.Fprintf(os.Stderr, "Proposed changes:\n%s\n", preview.Diff)
	}

	if assumeYes {
		return true
	}
	if !isTerminal(os.Stdin) {
		fmt.Fprintf(os.Stderr, "Error: refusing to run %s without confirmation in a non-interactive session (use -yes)\n", op)
		return false
	}

	fmt.Fprintf(os.Stderr, "Proceed? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// runBulkOperation drives the request/confirm flow for -bulk
func runBulkOperation(ctx context.Context, manager *bulkops.Manager, opName string, assumeYes bool) error {
	op := bulkops.Operation(opName)
	switch op {
	case bulkops.OpSync, bulkops.OpClear, bulkops.OpReset:
	default:
		return fmt.Errorf("unknown bulk operation '%s' (expected sync, clear, or reset)", opName)
	}

	preview, err := manager.Request(ctx, op)
	if err != nil {
		return err
	}
	if !confirmBulkOperation(op, preview, assumeYes) {
		return manager.Cancel()
	}
	return manager.Confirm(ctx)
}

func main() {
	topicsFile := flag.String("topics", "", "Path to a YAML file with a 'topics:' list of initial values")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, yaml (default: text)")
	fieldCount := flag.Int("fields", 0, "Number of topic fields in the collection (default: 5)")
	policyFile := flag.String("policy-file", "", "Path to a YAML content policy rules file")
	autoRepair := flag.Bool("auto-repair", true, "Automatically repair safe issues (whitespace, HTML tags, capitalization)")
	bulkOperation := flag.String("bulk", "", "Run a bulk operation before reporting: sync, clear, or reset")
	assumeYes := flag.Bool("yes", false, "Skip interactive confirmation of bulk operations")
	verbose := flag.Bool("verbose", false, "Display detailed information for each topic")
	debug := flag.Bool("debug", false, "Enable debug logging of the validation flow")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *showHelp {
		helpSystem := help.NewSystem(*noColor)
		switch {
		case len(flag.Args()) == 0:
			helpSystem.ShowGeneralHelp()
		case flag.Args()[0] == "factors":
			helpSystem.ShowFactorsHelp()
		default:
			if !helpSystem.ShowFactorHelp(flag.Args()[0]) {
				os.Exit(1)
			}
		}
		os.Exit(0)
	}

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stderr) || *quiet || os.Getenv("CI") != "" {
		*noColor = true
	}

	// Load configuration
	cfg := config.LoadConfigOrDefault(*configFile)

	// Handle profile operations
	activeProfile := handleProfiles(cfg, *listProfiles, *profileName)

	// Resolve final configuration values
	finalConfig := resolveConfiguration(cfg, activeProfile, &configFlags{
		outputFormat: *outputFormat,
		verbose:      *verbose,
		debug:        *debug,
		noColor:      *noColor,
		autoRepair:   *autoRepair,
		fieldCount:   *fieldCount,
		policyFile:   *policyFile,
	})

	if *noColor {
		finalConfig.noColor = true
	}

	if os.Getenv("TOPICKIT_DEBUG") != "" {
		finalConfig.debug = true
	}

	// Observability
	obsLevel := observability.ObservabilityOff
	if finalConfig.debug {
		obsLevel = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(obsLevel, os.Stderr)
	var debugObs *observability.DebugObserver
	if finalConfig.debug {
		debugObs = observability.NewDebugObserver(os.Stderr)
		observer.DebugObserver = debugObs
		debugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", os.Args))
	}

	ctx := context.Background()

	// Resolve initial topic values and the origin source
	values, source, err := loadTopics(ctx, *topicsFile, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(values) == 0 && *bulkOperation == "" {
		fmt.Fprintf(os.Stderr, "Error: no topics given (use -topics FILE or pass topic values as arguments)\n")
		flag.Usage()
		os.Exit(1)
	}

	// Build the shared field collection
	collection := field.NewCollectionFromOrigin(finalConfig.fieldCount, values)
	if debugObs != nil {
		debugObs.LogDetail("main", fmt.Sprintf("Collection fingerprint: %s", integrity.Fingerprint(collection)))
	}

	// Content policy
	contentPolicy := policy.NewDefaultPolicy()
	if finalConfig.policyFile != "" {
		contentPolicy = policy.LoadPolicy(finalConfig.policyFile)
	}

	// Quality scorer seeded with keywords from the origin values
	keywords := quality.ExtractPrimaryKeywords(values)
	scorer := quality.NewScorer(finalConfig.rules, keywords)
	if debugObs != nil {
		debugObs.LogDetail("main", fmt.Sprintf("Primary keywords: %s", strings.Join(keywords, ", ")))
	}

	// Validator
	options := validator.Options{
		MinLength:           finalConfig.rules.MinLength,
		MaxLength:           finalConfig.rules.MaxLength,
		OptimalMin:          finalConfig.rules.OptimalMin,
		OptimalMax:          finalConfig.rules.OptimalMax,
		RequiredIndex:       finalConfig.rules.RequiredIndex,
		AutoRepair:          finalConfig.autoRepair,
		Debounce:            finalConfig.debounce,
		SimilarityThreshold: cfg.Rules.SimilarityThreshold,
	}
	events := validator.Events{}
	if !*quiet {
		events.Notify = func(message, severity string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", severity, message)
		}
	}
	fieldValidator := validator.New(collection, scorer, contentPolicy, observer, events, options)
	defer fieldValidator.Close()

	// Integrity monitoring over the lifetime of the run
	monitor := integrity.NewMonitor(collection, observer, time.Duration(cfg.Defaults.IntegrityIntervalSeconds)*time.Second)
	monitor.Start()
	defer monitor.Stop()

	// Optional bulk operation before reporting
	if *bulkOperation != "" {
		manager := bulkops.NewManager(collection, source, bulkops.Options{
			Observer: observer,
			Notify: func(message, severity string) {
				if !*quiet {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", severity, message)
				}
			},
		})
		if err := runBulkOperation(ctx, manager, *bulkOperation, *assumeYes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fieldValidator.InvalidateAll()
	}

	// Validate every field and build the report
	results := fieldValidator.ValidateAll()
	report := formatters.NewReport(results)

	output, err := formatters.Export(finalConfig.format, report, formatters.FormatterOptions{
		Verbose: finalConfig.verbose,
		NoColor: finalConfig.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Println(output)
	}

	if report.Summary.ValidCount < report.Summary.FieldCount {
		os.Exit(1)
	}
}
