// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"
	"strings"

	"sheet-scan/internal/detector"
)

// Validator implements the detector.CategoryValidator interface for
// mainland CN mobile numbers: 11 digits starting 1[3-9], with optional
// +86/86 prefix and -, space or . separators.
type Validator struct {
	pattern *regexp.Regexp
}

// NewValidator creates and returns a new Validator instance with the
// compiled mobile number pattern.
func NewValidator() *Validator {
	return &Validator{
		// Optional country prefix, then 3+4+4 digits with optional
		// single separators at the group boundaries. Digit-run
		// boundaries are enforced separately since RE2 has no
		// lookarounds.
		pattern: regexp.MustCompile(`(?:\+?86[-\s.]?)?1[3-9][0-9][-\s.]?[0-9]{4}[-\s.]?[0-9]{4}`),
	}
}

// Category returns the category this validator handles.
func (v *Validator) Category() detector.Category {
	return detector.CategoryPhone
}

// FindCandidates scans a cell value for phone-shaped substrings. The
// regexp is greedy, so the longest eligible match at a start position
// wins and matches never overlap within one pass.
func (v *Validator) FindCandidates(text string) []detector.Candidate {
	var candidates []detector.Candidate

	for _, loc := range v.pattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !digitBoundary(text, start, end) {
			continue
		}
		candidates = append(candidates, detector.Candidate{
			Category: detector.CategoryPhone,
			Text:     text[start:end],
			Start:    start,
			End:      end,
		})
	}

	return candidates
}

// Validate normalizes the candidate (strip separators and the country
// prefix) and applies the structural rule: exactly 11 digits, first
// digit 1, second digit 3-9. No carrier segment lookup is performed.
func (v *Validator) Validate(candidate detector.Candidate) detector.Verdict {
	normalized := Normalize(candidate.Text)

	verdict := detector.Verdict{
		Candidate:  candidate,
		Normalized: normalized,
	}

	if len(normalized) != 11 || normalized[0] != '1' ||
		normalized[1] < '3' || normalized[1] > '9' || !allDigits(normalized) {
		verdict.Reason = detector.ReasonBadFormat
		return verdict
	}

	verdict.Valid = true
	return verdict
}

// Normalize strips separators and a leading +86/86 country prefix,
// leaving the bare subscriber number.
func Normalize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if len(cleaned) == 13 && strings.HasPrefix(cleaned, "86") {
		cleaned = cleaned[2:]
	}
	return cleaned
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// digitBoundary reports whether the match at [start,end) is not
// embedded in a longer digit run.
func digitBoundary(text string, start, end int) bool {
	if start > 0 && text[start-1] >= '0' && text[start-1] <= '9' {
		return false
	}
	if end < len(text) && text[end] >= '0' && text[end] <= '9' {
		return false
	}
	return true
}
