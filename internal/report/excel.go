// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report writes scan results back out as a styled workbook, so
// reviewers can filter and annotate findings in the same tool the
// source data came from.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheet-scan/internal/detector"
)

const sheetName = "扫描结果"

var headers = []string{
	"源文件名", "工作表", "行号", "类别", "匹配内容",
	"有效性", "规范值", "失败原因", "源文本", "上文", "下文",
}

// DefaultReportName returns a timestamped output filename.
func DefaultReportName(now time.Time) string {
	return fmt.Sprintf("扫描结果_%s.xlsx", now.Format("20060102_150405"))
}

// ReportNameFor derives a timestamped output filename from a source
// file, so reports sort next to the workbook they came from.
func ReportNameFor(source string, now time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if stem == "" {
		return DefaultReportName(now)
	}
	return fmt.Sprintf("%s_%s.xlsx", stem, now.Format("20060102_150405"))
}

// WriteXLSX writes findings and per-file errors to a styled workbook at
// the given path.
func WriteXLSX(path string, findings []detector.Finding, fileErrors []detector.FileError) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return err
	}

	validStyle, invalidStyle, err := validityStyles(f)
	if err != nil {
		return fmt.Errorf("error creating styles: %w", err)
	}

	for i, finding := range findings {
		row := i + 2
		if err := writeFinding(f, row, finding); err != nil {
			return err
		}

		cell, _ := excelize.CoordinatesToCellName(6, row)
		style := validStyle
		if !finding.Verdict.Valid {
			style = invalidStyle
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("error styling row %d: %w", row, err)
		}
	}

	if err := writeErrorSheet(f, fileErrors); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving report: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Border: []excelize.Border{
			{Type: "left", Color: "999999", Style: 1},
			{Type: "right", Color: "999999", Style: 1},
			{Type: "top", Color: "999999", Style: 1},
			{Type: "bottom", Color: "999999", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &cells); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("error setting column widths: %w", err)
	}
	if err := f.AutoFilter(sheetName, "A1:"+lastCol+"1", nil); err != nil {
		return fmt.Errorf("error adding filter: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing header row: %w", err)
	}
	return nil
}

func validityStyles(f *excelize.File) (valid, invalid int, err error) {
	valid, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "2E7D32", Bold: true}})
	if err != nil {
		return 0, 0, err
	}
	invalid, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "C62828", Bold: true}})
	if err != nil {
		return 0, 0, err
	}
	return valid, invalid, nil
}

func writeFinding(f *excelize.File, row int, finding detector.Finding) error {
	c := finding.Verdict.Candidate

	validity := "有效"
	if !finding.Verdict.Valid {
		validity = "无效"
	}

	before, target, after := splitContext(finding)

	cells := []interface{}{
		finding.File,
		finding.Sheet,
		c.Row + 1,
		string(c.Category),
		c.Text,
		validity,
		finding.Verdict.Normalized,
		string(finding.Verdict.Reason),
		target,
		before,
		after,
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
		return fmt.Errorf("error writing row %d: %w", row, err)
	}
	return nil
}

// splitContext renders the context window as the target cell's text
// plus the joined rows before and after it.
func splitContext(finding detector.Finding) (before, target, after string) {
	c := finding.Verdict.Candidate

	var beforeRows, afterRows []string
	for i, row := range finding.Context {
		switch {
		case i < finding.TargetIndex:
			beforeRows = append(beforeRows, strings.Join(row.Cells, " | "))
		case i > finding.TargetIndex:
			afterRows = append(afterRows, strings.Join(row.Cells, " | "))
		default:
			if c.Col < len(row.Cells) {
				target = row.Cells[c.Col]
			}
		}
	}
	return strings.Join(beforeRows, "\n"), target, strings.Join(afterRows, "\n")
}

func writeErrorSheet(f *excelize.File, fileErrors []detector.FileError) error {
	if len(fileErrors) == 0 {
		return nil
	}

	const errSheet = "跳过文件"
	if _, err := f.NewSheet(errSheet); err != nil {
		return fmt.Errorf("error creating error sheet: %w", err)
	}

	header := []interface{}{"文件", "原因"}
	if err := f.SetSheetRow(errSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing error header: %w", err)
	}
	for i, fe := range fileErrors {
		cells := []interface{}{fe.File, fe.Err.Error()}
		if err := f.SetSheetRow(errSheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("error writing error row: %w", err)
		}
	}
	return nil
}
