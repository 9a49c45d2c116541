// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sheet models spreadsheet data as immutable in-memory grids of
// string cells and provides column location and row-context extraction.
package sheet

import (
	"fmt"
	"strings"

	"sheet-scan/internal/detector"
)

// Grid is an ordered sequence of rows of string cells. Rows may be
// ragged; Cell is bounds-safe and treats missing cells as empty.
type Grid struct {
	Rows [][]string
}

// Sheet is one worksheet of a workbook.
type Sheet struct {
	Name string
	Grid Grid
}

// Workbook is the loaded, immutable form of one input file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// HeaderRow returns the first row, or nil for an empty grid.
func (g *Grid) HeaderRow() []string {
	if len(g.Rows) == 0 {
		return nil
	}
	return g.Rows[0]
}

// Cell returns the value at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	if col < 0 || col >= len(g.Rows[row]) {
		return ""
	}
	return g.Rows[row][col]
}

// LastRow returns the highest valid row index, or -1 for an empty grid.
func (g *Grid) LastRow() int {
	return len(g.Rows) - 1
}

// LocateColumn finds the index of the target column in a header row.
// Matching is exact and case-sensitive: the configured name first, then
// each alias in order. When nothing matches exactly, a substring pass
// over the header is tried (the column 消息内容(手机短信) should still
// resolve for the configured name 消息内容). First match wins.
func LocateColumn(header []string, name string, aliases []string) (int, error) {
	for _, want := range append([]string{name}, aliases...) {
		if want == "" {
			continue
		}
		for i, cell := range header {
			if cell == want {
				return i, nil
			}
		}
	}

	for _, want := range append([]string{name}, aliases...) {
		if want == "" {
			continue
		}
		for i, cell := range header {
			if strings.Contains(cell, want) {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q", detector.ErrColumnNotFound, name)
}

// ContextWindow extracts the rows surrounding row, count rows on each
// side, clipped to [0, LastRow]. The target row is always included
// exactly once; the returned index points at it within the window.
func (g *Grid) ContextWindow(row, count int) ([]detector.ContextRow, int) {
	if count < 0 {
		count = 0
	}

	first := row - count
	if first < 0 {
		first = 0
	}
	last := row + count
	if last > g.LastRow() {
		last = g.LastRow()
	}

	window := make([]detector.ContextRow, 0, last-first+1)
	for i := first; i <= last; i++ {
		cells := make([]string, len(g.Rows[i]))
		copy(cells, g.Rows[i])
		window = append(window, detector.ContextRow{Index: i, Cells: cells})
	}

	return window, row - first
}
