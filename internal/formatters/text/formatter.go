// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/formatters"

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
			"green":  color.New(color.FgGreen),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"yellow": color.New(color.FgYellow),
			"white":  color.New(color.FgWhite, color.Bold),
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

func (f *Formatter) Format(findings []detector.Finding, fileErrors []detector.FileError, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	if options.ValidOnly {
		findings = formatters.FilterValid(findings)
	}

	var builder strings.Builder

	if len(findings) == 0 && len(fileErrors) == 0 {
		return "No findings.", nil
	}

	currentFile := ""
	for _, finding := range findings {
		if finding.File != currentFile {
			currentFile = finding.File
			f.colors["white"].Fprintf(&builder, "%s\n", currentFile)
		}
		f.appendFinding(&builder, finding, options)
	}

	if len(fileErrors) > 0 {
		builder.WriteString("\n")
		f.colors["yellow"].Fprintf(&builder, "Skipped files:\n")
		for _, fe := range fileErrors {
			fmt.Fprintf(&builder, "  %s: %v\n", fe.File, fe.Err)
		}
	}

	return builder.String(), nil
}

func (f *Formatter) appendFinding(builder *strings.Builder, finding detector.Finding, options formatters.FormatterOptions) {
	c := finding.Verdict.Candidate

	status := f.colors["green"].Sprint("VALID")
	if !finding.Verdict.Valid {
		status = f.colors["red"].Sprintf("INVALID (%s)", finding.Verdict.Reason)
	}

	fmt.Fprintf(builder, "  %s 行%d列%d  %s  %s  %s\n",
		finding.Sheet, c.Row+1, c.Col+1,
		f.colors["cyan"].Sprint(c.Category), c.Text, status)

	if !options.Verbose {
		return
	}

	if finding.Verdict.Normalized != "" && finding.Verdict.Normalized != c.Text {
		fmt.Fprintf(builder, "      规范值: %s\n", finding.Verdict.Normalized)
	}
	if finding.Verdict.BirthDate != "" {
		fmt.Fprintf(builder, "      出生日期: %s\n", finding.Verdict.BirthDate)
	}
	for _, row := range finding.Context {
		marker := " "
		if row.Index == c.Row {
			marker = ">"
		}
		fmt.Fprintf(builder, "    %s 行%d: %s\n", marker, row.Index+1, strings.Join(row.Cells, " | "))
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
