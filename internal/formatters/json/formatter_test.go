// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"errors"
	"testing"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/formatters"
)

func TestFormat(t *testing.T) {
	findings := []detector.Finding{{
		Verdict: detector.Verdict{
			Candidate: detector.Candidate{
				Category: detector.CategoryIDCard,
				Text:     "110105199003072039",
				Row:      2,
				Col:      0,
			},
			Valid:      true,
			Normalized: "110105199003072039",
			BirthDate:  "1990-03-07",
		},
		File:  "b.xlsx",
		Sheet: "Sheet1",
	}}
	fileErrors := []detector.FileError{{File: "bad.xlsx", Err: errors.New("open failed")}}

	f := NewFormatter()
	out, err := f.Format(findings, fileErrors, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Findings []map[string]interface{} `json:"findings"`
		Errors   []map[string]interface{} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(doc.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(doc.Findings))
	}
	got := doc.Findings[0]
	if got["category"] != "ID_CARD" || got["birth_date"] != "1990-03-07" {
		t.Errorf("unexpected finding: %+v", got)
	}
	if got["row"].(float64) != 3 {
		t.Errorf("row = %v, want 3 (1-based)", got["row"])
	}

	if len(doc.Errors) != 1 || doc.Errors[0]["file"] != "bad.xlsx" {
		t.Errorf("unexpected errors: %+v", doc.Errors)
	}
}

func TestFormatEmptyIsValidJSON(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(nil, nil, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := doc["findings"]; !ok {
		t.Error("findings key missing from empty output")
	}
}
