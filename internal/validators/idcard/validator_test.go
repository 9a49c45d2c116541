// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package idcard

import (
	"testing"

	"sheet-scan/internal/detector"
)

func validate(t *testing.T, id string) detector.Verdict {
	t.Helper()
	return NewValidator().Validate(detector.Candidate{Category: detector.CategoryIDCard, Text: id})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		valid  bool
		reason detector.FailureReason
	}{
		{"valid", "110105199003072039", true, ""},
		{"valid other region", "440308199901010012", true, ""},
		{"valid leap day", "110101199602291238", true, ""},
		{"wrong check char", "11010519900307203X", false, detector.ReasonChecksumMismatch},
		{"wrong lowercase check char", "11010519900307203x", false, detector.ReasonChecksumMismatch},
		{"non-leap feb 29", "110101199702291235", false, detector.ReasonBadDate},
		{"month 13", "110105199013072039", false, detector.ReasonBadDate},
		{"day 32", "110105199003322039", false, detector.ReasonBadDate},
		{"zero region code", "010105199003072035", false, detector.ReasonBadFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := validate(t, tc.id)
			if verdict.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v", verdict.Valid, tc.valid)
			}
			if verdict.Reason != tc.reason {
				t.Errorf("Reason = %q, want %q", verdict.Reason, tc.reason)
			}
		})
	}
}

func TestCheckCharCaseInsensitive(t *testing.T) {
	// 11010519900307005 has expected check code 'X'; both cases must
	// validate, and Normalized always carries the uppercase form.
	for _, id := range []string{"11010519900307005X", "11010519900307005x"} {
		verdict := validate(t, id)
		if !verdict.Valid {
			t.Fatalf("%s: expected valid, got reason %q", id, verdict.Reason)
		}
		if verdict.Normalized != "11010519900307005X" {
			t.Errorf("%s: Normalized = %q", id, verdict.Normalized)
		}
		if verdict.BirthDate != "1990-03-07" {
			t.Errorf("%s: BirthDate = %q, want 1990-03-07", id, verdict.BirthDate)
		}
	}
}

// Altering any single leading digit must flip validity: the weights are
// coprime with 11, so any single-digit change shifts the checksum.
func TestSingleDigitAlterationFlipsValidity(t *testing.T) {
	const valid = "110105199003072039"
	if !validate(t, valid).Valid {
		t.Fatal("baseline must validate")
	}

	for i := 0; i < 17; i++ {
		altered := []byte(valid)
		altered[i] = '0' + (altered[i]-'0'+1)%10
		if verdict := validate(t, string(altered)); verdict.Valid {
			t.Errorf("altering digit %d should invalidate, got valid for %s", i, altered)
		}
	}
}

func TestFindCandidates(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"bare", "110105199003072039", []string{"110105199003072039"}},
		{"in chinese text", "身份证11010519900307888X核实", []string{"11010519900307888X"}},
		{"lowercase check char", "11010519900307203x", []string{"11010519900307203x"}},
		{"bad date still a candidate", "110105199013072039", []string{"110105199013072039"}},
		{"too short", "11010519900307", nil},
		{"embedded in longer run", "9110105199003072039", nil},
		{"followed by x", "110105199003072039x", nil},
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
