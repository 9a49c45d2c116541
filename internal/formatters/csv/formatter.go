// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(findings []detector.Finding, fileErrors []detector.FileError, options formatters.FormatterOptions) (string, error) {
	if options.ValidOnly {
		findings = formatters.FilterValid(findings)
	}

	headers := []string{"File", "Sheet", "Row", "Column", "Category", "Text", "Valid", "Normalized", "Reason"}
	csvRows := []string{strings.Join(headers, ",")}

	for _, finding := range findings {
		csvRows = append(csvRows, f.createCSVRow(finding))
	}

	return strings.Join(csvRows, "\n"), nil
}

// createCSVRow creates a CSV row for a finding
func (f *Formatter) createCSVRow(finding detector.Finding) string {
	c := finding.Verdict.Candidate

	row := []string{
		f.escapeCSVField(finding.File),
		f.escapeCSVField(finding.Sheet),
		fmt.Sprintf("%d", c.Row+1),
		fmt.Sprintf("%d", c.Col+1),
		f.escapeCSVField(string(c.Category)),
		f.escapeCSVField(c.Text),
		fmt.Sprintf("%t", finding.Verdict.Valid),
		f.escapeCSVField(finding.Verdict.Normalized),
		f.escapeCSVField(string(finding.Verdict.Reason)),
	}

	return strings.Join(row, ",")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		// Prefix with single quote to prevent formula execution
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
