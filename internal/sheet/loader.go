// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Loader turns a file path into an in-memory workbook. The excelize
// implementation is the default; tests substitute their own.
type Loader interface {
	Load(path string) (*Workbook, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*Workbook, error)

func (f LoaderFunc) Load(path string) (*Workbook, error) {
	return f(path)
}

// Load reads every worksheet of an xlsx file into a Workbook. Loading
// is a discrete synchronous step: once returned, the workbook is
// immutable and scanning never touches the file again.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Grid: Grid{Rows: rows}})
	}

	return wb, nil
}

// DefaultLoader is the excelize-backed Loader used outside of tests.
var DefaultLoader Loader = LoaderFunc(Load)
