// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bankcard

import (
	"testing"

	"sheet-scan/internal/detector"
)

func validate(raw string) detector.Verdict {
	return NewValidator().Validate(detector.Candidate{Category: detector.CategoryBankCard, Text: raw})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		valid      bool
		normalized string
	}{
		{"visa test number", "4111111111111111", true, "4111111111111111"},
		{"off by one", "4111111111111112", false, "4111111111111112"},
		{"mastercard test number", "5500000000000004", true, "5500000000000004"},
		{"space separated", "4111 1111 1111 1111", true, "4111111111111111"},
		{"dash separated", "5500-0000-0000-0004", true, "5500000000000004"},
		{"13 digit visa", "4222222222222", true, "4222222222222"},
		{"luhn failure", "6225880123456789", false, "6225880123456789"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := validate(tc.raw)
			if verdict.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v", verdict.Valid, tc.valid)
			}
			if verdict.Normalized != tc.normalized {
				t.Errorf("Normalized = %q, want %q", verdict.Normalized, tc.normalized)
			}
			if !tc.valid && verdict.Reason != detector.ReasonLuhnMismatch {
				t.Errorf("Reason = %q, want %q", verdict.Reason, detector.ReasonLuhnMismatch)
			}
		})
	}
}

func TestFindCandidates(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"bare 16", "卡号6225880123456789绑定", []string{"6225880123456789"}},
		{"grouped", "6225 8801 2345 6789", []string{"6225 8801 2345 6789"}},
		{"13 digits", "4222222222222", []string{"4222222222222"}},
		{"19 digits", "6225880123456789012", []string{"6225880123456789012"}},
		{"12 digits too short", "622588012345", nil},
		{"20 digits too long", "62258801234567890123", nil},
		{"18 digit id-shaped run is a candidate", "110105199003072039", []string{"110105199003072039"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := v.FindCandidates(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d candidates, want %d: %+v", len(got), len(tc.want), got)
			}
			for i, c := range got {
				if c.Text != tc.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, c.Text, tc.want[i])
				}
			}
		})
	}
}
