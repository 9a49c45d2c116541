// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/observability"
	"sheet-scan/internal/sheet"
)

// Pipeline scans one workbook at a time: locate the target column per
// sheet, run every enabled matcher/validator over the column's cells,
// and attach row context to each verdict. A Pipeline holds no mutable
// state after construction and is safe for concurrent use across
// worker goroutines.
type Pipeline struct {
	cfg        detector.RunConfig
	validators []detector.CategoryValidator
	loader     sheet.Loader
	observer   *observability.StandardObserver
}

// NewPipeline builds a pipeline for one run configuration. The observer
// may be nil.
func NewPipeline(cfg detector.RunConfig, observer *observability.StandardObserver) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		validators: BuildValidatorSet(cfg),
		loader:     sheet.DefaultLoader,
		observer:   observer,
	}
}

// SetLoader replaces the workbook loader. Tests use this to feed
// in-memory workbooks.
func (p *Pipeline) SetLoader(loader sheet.Loader) {
	p.loader = loader
}

// ScanFile loads a workbook and scans it. A load failure is returned as
// is and isolates to this file; the caller records it as a file-level
// error and proceeds.
func (p *Pipeline) ScanFile(ctx context.Context, path string) ([]detector.Finding, error) {
	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("pipeline", "scan_file", path)
	}

	wb, err := p.loader.Load(path)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, err
	}

	findings, err := p.ScanWorkbook(ctx, wb)
	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{"finding_count": len(findings)})
	}
	return findings, err
}

// ScanWorkbook scans every sheet of a loaded workbook. Sheets missing
// the target column are skipped; when no sheet has it the workbook
// fails with ErrColumnNotFound. Cancellation is checked between sheets:
// a cancelled scan returns nothing rather than a partial file.
func (p *Pipeline) ScanWorkbook(ctx context.Context, wb *sheet.Workbook) ([]detector.Finding, error) {
	var findings []detector.Finding
	located := false

	for _, sh := range wb.Sheets {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		col, err := sheet.LocateColumn(sh.Grid.HeaderRow(), p.cfg.TargetColumn, p.cfg.ColumnAliases)
		if err != nil {
			continue
		}
		located = true

		findings = append(findings, p.scanSheet(wb.Path, sh, col)...)
	}

	if !located {
		return nil, fmt.Errorf("%w: %q", detector.ErrColumnNotFound, p.cfg.TargetColumn)
	}

	return findings, nil
}

// scanSheet scans the resolved column of one sheet. Rows are
// independent: no state crosses row boundaries, so the produced
// findings are ordered purely by (row, col, offset) via SortFindings.
func (p *Pipeline) scanSheet(file string, sh sheet.Sheet, col int) []detector.Finding {
	var findings []detector.Finding

	for row := 1; row <= sh.Grid.LastRow(); row++ {
		cell := sh.Grid.Cell(row, col)
		if cell == "" {
			continue
		}

		verdicts := p.scanCell(cell)
		if len(verdicts) == 0 {
			continue
		}

		window, target := sh.Grid.ContextWindow(row, p.cfg.ContextRows)
		for _, verdict := range verdicts {
			verdict.Candidate.Row = row
			verdict.Candidate.Col = col
			verdict.Candidate.File = file
			verdict.Candidate.Sheet = sh.Name
			findings = append(findings, detector.Finding{
				Verdict:     verdict,
				Context:     window,
				TargetIndex: target,
				File:        file,
				Sheet:       sh.Name,
			})
		}
	}

	detector.SortFindings(findings)
	return findings
}

// scanCell runs every enabled matcher/validator over one cell value.
// Category scans are independent and may overlap, with one exception:
// a bank-card candidate overlapping a valid ID-card span is suppressed,
// since a valid 18-digit resident ID would otherwise double-report as a
// card-shaped digit run. Invalid ID spans do not suppress.
func (p *Pipeline) scanCell(text string) []detector.Verdict {
	var verdicts []detector.Verdict
	var validIDSpans [][2]int

	for _, v := range p.validators {
		for _, candidate := range v.FindCandidates(text) {
			verdict := v.Validate(candidate)
			if verdict.Valid && candidate.Category == detector.CategoryIDCard {
				validIDSpans = append(validIDSpans, [2]int{candidate.Start, candidate.End})
			}
			verdicts = append(verdicts, verdict)
		}
	}

	if len(validIDSpans) == 0 {
		return verdicts
	}

	kept := verdicts[:0]
	for _, verdict := range verdicts {
		if verdict.Candidate.Category == detector.CategoryBankCard &&
			overlapsAny(verdict.Candidate.Start, verdict.Candidate.End, validIDSpans) {
			continue
		}
		kept = append(kept, verdict)
	}
	return kept
}

func overlapsAny(start, end int, spans [][2]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
