// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"errors"
	"fmt"
	"sort"
)

// Category identifies one kind of sensitive data. The set is closed:
// every category has exactly one matcher/validator pair.
type Category string

const (
	CategoryPhone    Category = "PHONE"
	CategoryIDCard   Category = "ID_CARD"
	CategoryBankCard Category = "BANK_CARD"
)

// AllCategories returns every known category in canonical scan order.
func AllCategories() []Category {
	return []Category{CategoryPhone, CategoryIDCard, CategoryBankCard}
}

// Known reports whether c is one of the defined categories.
func (c Category) Known() bool {
	switch c {
	case CategoryPhone, CategoryIDCard, CategoryBankCard:
		return true
	}
	return false
}

// FailureReason explains why a candidate failed validation. Failures are
// data, not errors: invalid candidates are still reported.
type FailureReason string

const (
	ReasonBadFormat        FailureReason = "BadFormat"
	ReasonBadDate          FailureReason = "BadDate"
	ReasonChecksumMismatch FailureReason = "ChecksumMismatch"
	ReasonLuhnMismatch     FailureReason = "LuhnMismatch"
)

// Candidate is a lexically plausible but not-yet-validated substring
// found by a pattern matcher. Offsets are byte offsets into the source
// cell text and satisfy 0 <= Start < End <= len(cell).
type Candidate struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	File     string   `json:"file"`
	Sheet    string   `json:"sheet"`
}

// Verdict is the validation outcome for one candidate.
type Verdict struct {
	Candidate  Candidate     `json:"candidate"`
	Valid      bool          `json:"valid"`
	Normalized string        `json:"normalized,omitempty"`
	BirthDate  string        `json:"birth_date,omitempty"`
	Reason     FailureReason `json:"reason,omitempty"`
}

// ContextRow is one row of surrounding context attached to a finding.
type ContextRow struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

// Finding bundles a verdict with its surrounding row context. It is the
// unit handed to report generation and is immutable once built.
type Finding struct {
	Verdict     Verdict      `json:"verdict"`
	Context     []ContextRow `json:"context"`
	TargetIndex int          `json:"target_index"`
	File        string       `json:"file"`
	Sheet       string       `json:"sheet"`
}

// CategoryValidator pairs the pattern matcher and validator for one
// category. Implementations are pure and safe for concurrent use.
type CategoryValidator interface {
	// Category returns the category this validator handles.
	Category() Category

	// FindCandidates scans a cell value and returns candidate spans.
	// Only Category, Text, Start and End are populated; provenance
	// fields are filled in by the pipeline.
	FindCandidates(text string) []Candidate

	// Validate applies the category's checksum/format rule to a
	// candidate and returns the verdict.
	Validate(candidate Candidate) Verdict
}

// Sentinel errors for per-file and run-level failure modes.
var (
	// ErrColumnNotFound means the target column is absent from every
	// sheet of a workbook after alias resolution.
	ErrColumnNotFound = errors.New("target column not found")

	// ErrRunCancelled is returned by the aggregator when the run was
	// cancelled; completed per-file results are still returned.
	ErrRunCancelled = errors.New("run cancelled")
)

// FileError records a per-file failure. File-level failures isolate to
// the file: the rest of the run proceeds.
type FileError struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RunConfig is the immutable per-run configuration consumed by every
// pipeline invocation. It is passed explicitly, never read from
// ambient state.
type RunConfig struct {
	// TargetColumn is matched exactly against the header row first.
	TargetColumn string

	// ColumnAliases are tried in order when TargetColumn is absent.
	ColumnAliases []string

	// ContextRows is the number of rows included before and after a
	// matched row. Must be >= 0.
	ContextRows int

	// EnabledChecks toggles each category independently. A nil map
	// enables everything.
	EnabledChecks map[Category]bool

	// Workers bounds the file-level worker pool. Zero selects the
	// default.
	Workers int
}

// CheckEnabled reports whether a category is enabled for this run.
func (c RunConfig) CheckEnabled(cat Category) bool {
	if c.EnabledChecks == nil {
		return true
	}
	return c.EnabledChecks[cat]
}

// DefaultRunConfig returns the stock configuration: scan the 消息内容
// column with two rows of context, all categories enabled.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		TargetColumn:  "消息内容",
		ColumnAliases: []string{"内容", "短信"},
		ContextRows:   2,
		EnabledChecks: map[Category]bool{
			CategoryPhone:    true,
			CategoryIDCard:   true,
			CategoryBankCard: true,
		},
	}
}

// SortFindings orders findings by row, then column, then start offset,
// then end offset, then category. File and sheet order are preserved by
// construction (the pipeline emits sheets in workbook order and the
// aggregator reassembles files in input order), so this yields the
// deterministic total order row -> column/offset regardless of which
// worker produced what.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i].Verdict.Candidate, findings[j].Verdict.Candidate
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Category < b.Category
	})
}
