// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"sheet-scan/internal/config"
	"sheet-scan/internal/core"
	"sheet-scan/internal/detector"
	"sheet-scan/internal/formatters"
	_ "sheet-scan/internal/formatters/csv"
	_ "sheet-scan/internal/formatters/json"
	_ "sheet-scan/internal/formatters/text"
	"sheet-scan/internal/help"
	"sheet-scan/internal/observability"
	"sheet-scan/internal/parallel"
	"sheet-scan/internal/report"
	"sheet-scan/internal/version"

	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	inputFile := flag.String("file", "", "Path to an input .xlsx file or a directory to scan recursively")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	targetColumn := flag.String("column", "", "Header name of the column to scan")
	columnAliases := flag.String("aliases", "", "Comma-separated fallback header names")
	contextRows := flag.Int("context", -1, "Number of context rows to capture on each side of a finding")
	checksToRun := flag.String("checks", "", "Checks to run: PHONE, ID_CARD, BANK_CARD, combinations like 'PHONE,ID_CARD', or 'all'")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-size to the host)")
	outputFormat := flag.String("format", "", "Output format: text, json, csv, excel (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	validOnly := flag.Bool("valid-only", false, "Only report findings that passed validation")
	verbose := flag.Bool("verbose", false, "Display row context and normalized values for each finding")
	debug := flag.Bool("debug", false, "Enable debug logging of the scan flow")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress the run summary (useful for scripts and CI/CD)")
	showVersion := flag.Bool("version", false, "Show version information")
	explainCheck := flag.String("explain", "", "Explain a check in detail: PHONE, ID_CARD, BANK_CARD, or 'all'")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if *explainCheck != "" {
		showExplain(*explainCheck, *noColor)
		return
	}

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stdout) || os.Getenv("CI") != "" {
		*noColor = true
	}
	if *noColor {
		color.NoColor = true
	}

	runCfg, outCfg := resolveConfiguration(*configFile)
	applyFlagOverrides(&runCfg, &outCfg, flagValues{
		targetColumn:  *targetColumn,
		columnAliases: *columnAliases,
		contextRows:   *contextRows,
		checks:        *checksToRun,
		workers:       *workers,
		format:        *outputFormat,
		verbose:       *verbose,
		debug:         *debug,
	})
	outCfg.outputFile = *outputFile
	outCfg.validOnly = *validOnly
	if *noColor || outCfg.noColor {
		outCfg.noColor = true
		color.NoColor = true
	}

	files, err := expandInputs(*inputFile, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input files. Pass -file or positional paths; directories are scanned for .xlsx recursively.")
		flag.Usage()
		os.Exit(1)
	}

	var observer *observability.StandardObserver
	if outCfg.debug {
		observer = observability.NewDebugObserver(os.Stderr).StandardObserver
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator := parallel.NewAggregator(runCfg, observer)
	findings, fileErrors, stats, runErr := aggregator.Run(ctx, files)

	cancelled := errors.Is(runErr, detector.ErrRunCancelled)
	if runErr != nil && !cancelled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if cancelled {
		fmt.Fprintln(os.Stderr, "Warning: scan cancelled, reporting completed files only")
	}

	if stats.ProcessedFiles == 0 && !cancelled {
		for _, fe := range fileErrors {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", fe.File, fe.Err)
		}
		fmt.Fprintln(os.Stderr, "Error: no files could be processed")
		os.Exit(1)
	}

	if err := writeResults(findings, fileErrors, files, outCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		printSummary(stats, fileErrors)
	}

	if cancelled {
		os.Exit(1)
	}
}

// flagValues carries the command line overrides applied on top of the
// config file. Zero values mean "not set".
type flagValues struct {
	targetColumn  string
	columnAliases string
	contextRows   int
	checks        string
	workers       int
	format        string
	verbose       bool
	debug         bool
}

// outputConfiguration holds resolved output settings
type outputConfiguration struct {
	format     string
	outputFile string
	validOnly  bool
	verbose    bool
	debug      bool
	noColor    bool
}

// resolveConfiguration loads the config file (or defaults) and maps it
// onto a run configuration.
func resolveConfiguration(configFile string) (detector.RunConfig, outputConfiguration) {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default configuration")
		cfg = config.DefaultConfig()
	}

	runCfg := detector.DefaultRunConfig()
	runCfg.TargetColumn = cfg.Defaults.TargetColumn
	runCfg.ColumnAliases = cfg.Defaults.ColumnAliases
	runCfg.ContextRows = cfg.Defaults.ContextRows
	runCfg.Workers = cfg.Defaults.Workers
	runCfg.EnabledChecks = core.ParseChecksToRun(splitList(cfg.Defaults.Checks))

	outCfg := outputConfiguration{
		format:  cfg.Defaults.Format,
		verbose: cfg.Defaults.Verbose,
		debug:   cfg.Defaults.Debug,
		noColor: cfg.Defaults.NoColor,
	}
	return runCfg, outCfg
}

func applyFlagOverrides(runCfg *detector.RunConfig, outCfg *outputConfiguration, flags flagValues) {
	if flags.targetColumn != "" {
		runCfg.TargetColumn = flags.targetColumn
	}
	if flags.columnAliases != "" {
		runCfg.ColumnAliases = splitList(flags.columnAliases)
	}
	if flags.contextRows >= 0 {
		runCfg.ContextRows = flags.contextRows
	}
	if flags.checks != "" {
		runCfg.EnabledChecks = core.ParseChecksToRun(splitList(flags.checks))
	}
	if flags.workers > 0 {
		runCfg.Workers = flags.workers
	}
	if flags.format != "" {
		outCfg.format = flags.format
	}
	if flags.verbose {
		outCfg.verbose = true
	}
	if flags.debug {
		outCfg.debug = true
	}
	if outCfg.format == "" {
		outCfg.format = "text"
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// expandInputs resolves the -file flag and positional arguments into a
// sorted, deduplicated list of .xlsx files. Directories are walked
// recursively; dot-directories and Office lock files are skipped.
func expandInputs(inputFile string, args []string) ([]string, error) {
	var inputs []string
	if inputFile != "" {
		inputs = append(inputs, inputFile)
	}
	inputs = append(inputs, args...)

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}

		if !info.IsDir() {
			add(input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != input && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", input, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// writeResults renders findings in the selected format. The excel
// format always writes a file; other formats write to stdout unless
// -output is given.
func writeResults(findings []detector.Finding, fileErrors []detector.FileError, files []string, outCfg outputConfiguration) error {
	if outCfg.format == "excel" {
		path := outCfg.outputFile
		if path == "" {
			path = report.ReportNameFor(files[0], time.Now())
		}
		if err := report.WriteXLSX(path, findings, fileErrors); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
		return nil
	}

	options := formatters.FormatterOptions{
		Verbose:   outCfg.verbose,
		NoColor:   outCfg.noColor,
		ValidOnly: outCfg.validOnly,
	}
	// File output never carries ANSI colors
	if outCfg.outputFile != "" {
		options.NoColor = true
	}

	output, err := formatters.Export(outCfg.format, findings, fileErrors, options)
	if err != nil {
		return err
	}

	if outCfg.outputFile == "" {
		fmt.Println(output)
		return nil
	}
	return os.WriteFile(outCfg.outputFile, []byte(output), 0600)
}

// printSummary writes the per-run statistics to stderr, keeping stdout
// clean for formatted results.
func printSummary(stats *parallel.ProcessingStats, fileErrors []detector.FileError) {
	bold := color.New(color.Bold)

	fmt.Fprintln(os.Stderr)
	bold.Fprintf(os.Stderr, "Scanned %d/%d files in %s (%d workers)\n",
		stats.ProcessedFiles, stats.TotalFiles, stats.Duration.Round(time.Millisecond), stats.WorkerCount)
	fmt.Fprintf(os.Stderr, "Findings: %d total, %d valid\n", stats.TotalFindings, stats.ValidFindings)

	for _, cat := range detector.AllCategories() {
		cs := stats.Categories[cat]
		if cs.Total == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "  %-9s %d total, %d valid\n", cat, cs.Total, cs.Valid)
	}

	if len(fileErrors) > 0 {
		color.New(color.FgYellow).Fprintf(os.Stderr, "Skipped %d file(s):\n", len(fileErrors))
		for _, fe := range fileErrors {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", fe.File, fe.Err)
		}
	}
}

func showExplain(check string, noColor bool) {
	helpSystem := help.NewSystem(noColor)
	core.RegisterHelpProviders(helpSystem)

	if strings.EqualFold(check, "all") || strings.EqualFold(check, "list") {
		helpSystem.ShowChecksHelp()
		return
	}
	if !helpSystem.ShowCheckHelp(strings.ToUpper(strings.TrimSpace(check))) {
		fmt.Fprintf(os.Stderr, "Unknown check %q. Use -explain all to list available checks.\n", check)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
