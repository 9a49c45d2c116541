// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// output is the top-level JSON document
type output struct {
	Findings []finding   `json:"findings"`
	Errors   []fileError `json:"errors,omitempty"`
}

type finding struct {
	File       string                 `json:"file"`
	Sheet      string                 `json:"sheet"`
	Row        int                    `json:"row"`
	Column     int                    `json:"column"`
	Category   detector.Category      `json:"category"`
	Text       string                 `json:"text"`
	Valid      bool                   `json:"valid"`
	Normalized string                 `json:"normalized,omitempty"`
	BirthDate  string                 `json:"birth_date,omitempty"`
	Reason     detector.FailureReason `json:"reason,omitempty"`
	Context    []contextRow           `json:"context,omitempty"`
}

type contextRow struct {
	Row    int      `json:"row"`
	Cells  []string `json:"cells"`
	Target bool     `json:"target,omitempty"`
}

type fileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

func (f *Formatter) Format(findings []detector.Finding, fileErrors []detector.FileError, options formatters.FormatterOptions) (string, error) {
	if options.ValidOnly {
		findings = formatters.FilterValid(findings)
	}

	doc := output{Findings: []finding{}}

	for _, src := range findings {
		c := src.Verdict.Candidate
		dst := finding{
			File:       src.File,
			Sheet:      src.Sheet,
			Row:        c.Row + 1,
			Column:     c.Col + 1,
			Category:   c.Category,
			Text:       c.Text,
			Valid:      src.Verdict.Valid,
			Normalized: src.Verdict.Normalized,
			BirthDate:  src.Verdict.BirthDate,
			Reason:     src.Verdict.Reason,
		}
		if options.Verbose {
			for _, row := range src.Context {
				dst.Context = append(dst.Context, contextRow{
					Row:    row.Index + 1,
					Cells:  row.Cells,
					Target: row.Index == c.Row,
				})
			}
		}
		doc.Findings = append(doc.Findings, dst)
	}

	for _, fe := range fileErrors {
		doc.Errors = append(doc.Errors, fileError{File: fe.File, Error: fe.Err.Error()})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling results: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
