// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/sheet"
)

func fakeWorkbook(path, cell string) *sheet.Workbook {
	return &sheet.Workbook{
		Path: path,
		Sheets: []sheet.Sheet{{
			Name: "Sheet1",
			Grid: sheet.Grid{Rows: [][]string{{"消息内容"}, {cell}}},
		}},
	}
}

// mapLoader serves canned workbooks by path; unknown paths fail.
func mapLoader(workbooks map[string]*sheet.Workbook) sheet.Loader {
	return sheet.LoaderFunc(func(path string) (*sheet.Workbook, error) {
		wb, ok := workbooks[path]
		if !ok {
			return nil, fmt.Errorf("open %s: no such file", path)
		}
		return wb, nil
	})
}

func testFiles() (map[string]*sheet.Workbook, []string) {
	workbooks := map[string]*sheet.Workbook{
		"a.xlsx": fakeWorkbook("a.xlsx", "客服电话13812345678"),
		"b.xlsx": fakeWorkbook("b.xlsx", "证件号110105199003072039"),
		"c.xlsx": fakeWorkbook("c.xlsx", "卡号4111111111111111"),
		"d.xlsx": fakeWorkbook("d.xlsx", "无敏感内容"),
	}
	return workbooks, []string{"a.xlsx", "b.xlsx", "c.xlsx", "d.xlsx"}
}

func runWith(t *testing.T, workers int, workbooks map[string]*sheet.Workbook, files []string) ([]detector.Finding, []detector.FileError, *ProcessingStats) {
	t.Helper()
	cfg := detector.DefaultRunConfig()
	cfg.Workers = workers

	agg := NewAggregator(cfg, nil)
	agg.SetLoader(mapLoader(workbooks))

	findings, fileErrors, stats, err := agg.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	return findings, fileErrors, stats
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	workbooks, files := testFiles()

	serial, _, _ := runWith(t, 1, workbooks, files)
	if len(serial) != 3 {
		t.Fatalf("got %d findings, want 3", len(serial))
	}

	// Findings come back in input-list order regardless of parallelism.
	wantFiles := []string{"a.xlsx", "b.xlsx", "c.xlsx"}
	for i, f := range serial {
		if f.File != wantFiles[i] {
			t.Errorf("finding %d file = %q, want %q", i, f.File, wantFiles[i])
		}
	}

	for _, workers := range []int{2, 4, 8} {
		concurrent, _, _ := runWith(t, workers, workbooks, files)
		if !reflect.DeepEqual(serial, concurrent) {
			t.Errorf("workers=%d produced different output than serial run", workers)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	workbooks, files := testFiles()

	first, _, _ := runWith(t, 4, workbooks, files)
	second, _, _ := runWith(t, 4, workbooks, files)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs over the same inputs differ")
	}
}

func TestRunIsolatesFileErrors(t *testing.T) {
	workbooks, _ := testFiles()
	workbooks["nocol.xlsx"] = &sheet.Workbook{
		Path: "nocol.xlsx",
		Sheets: []sheet.Sheet{{
			Name: "Sheet1",
			Grid: sheet.Grid{Rows: [][]string{{"序号"}, {"1"}}},
		}},
	}
	files := []string{"a.xlsx", "nocol.xlsx", "missing.xlsx", "c.xlsx"}

	findings, fileErrors, stats := runWith(t, 2, workbooks, files)

	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if findings[0].File != "a.xlsx" || findings[1].File != "c.xlsx" {
		t.Errorf("finding files = %q, %q", findings[0].File, findings[1].File)
	}

	if len(fileErrors) != 2 {
		t.Fatalf("got %d file errors, want 2: %v", len(fileErrors), fileErrors)
	}
	sawColumnErr := false
	for _, fe := range fileErrors {
		if fe.File == "nocol.xlsx" && errors.Is(fe.Err, detector.ErrColumnNotFound) {
			sawColumnErr = true
		}
	}
	if !sawColumnErr {
		t.Errorf("missing ErrColumnNotFound for nocol.xlsx: %v", fileErrors)
	}

	if stats.ProcessedFiles != 2 || stats.TotalFiles != 4 {
		t.Errorf("stats processed/total = %d/%d, want 2/4", stats.ProcessedFiles, stats.TotalFiles)
	}
}

func TestRunCancelled(t *testing.T) {
	workbooks, files := testFiles()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := detector.DefaultRunConfig()
	cfg.Workers = 1

	agg := NewAggregator(cfg, nil)
	agg.SetLoader(sheet.LoaderFunc(func(path string) (*sheet.Workbook, error) {
		// Cancel while the second file is loading: the first file's
		// findings must survive, the rest must be dropped.
		if path == "b.xlsx" {
			cancel()
		}
		return workbooks[path], nil
	}))

	findings, fileErrors, _, err := agg.Run(ctx, files)
	if !errors.Is(err, detector.ErrRunCancelled) {
		t.Fatalf("err = %v, want ErrRunCancelled", err)
	}
	if len(fileErrors) != 0 {
		t.Errorf("cancellation should not report file errors: %v", fileErrors)
	}
	if len(findings) != 1 || findings[0].File != "a.xlsx" {
		t.Errorf("completed findings = %+v, want only a.xlsx", findings)
	}
}

func TestStatsTallies(t *testing.T) {
	workbooks, files := testFiles()
	workbooks["e.xlsx"] = fakeWorkbook("e.xlsx", "卡号4111111111111112")
	files = append(files, "e.xlsx")

	_, _, stats := runWith(t, 2, workbooks, files)

	if stats.TotalFindings != 4 || stats.ValidFindings != 3 {
		t.Errorf("findings total/valid = %d/%d, want 4/3", stats.TotalFindings, stats.ValidFindings)
	}
	card := stats.Categories[detector.CategoryBankCard]
	if card.Total != 2 || card.Valid != 1 {
		t.Errorf("bank card tallies = %+v, want total 2 valid 1", card)
	}
}
