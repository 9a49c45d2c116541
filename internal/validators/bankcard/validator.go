// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bankcard

import (
	"regexp"
	"strings"

	"sheet-scan/internal/detector"
)

// Validator implements the detector.CategoryValidator interface for
// bank card numbers: 13-19 digit runs, optionally separated by a space
// or dash at 4-digit group boundaries, validated with the Luhn
// algorithm.
type Validator struct {
	pattern *regexp.Regexp
}

// NewValidator creates and returns a new Validator instance.
func NewValidator() *Validator {
	return &Validator{
		// Three groups of four, a 1-4 digit fourth group and an
		// optional 1-3 digit tail: 13-19 digits total. Greedy, so the
		// longest run at a start position wins.
		pattern: regexp.MustCompile(`[0-9]{4}(?:[- ]?[0-9]{4}){2}[- ]?[0-9]{1,4}(?:[- ]?[0-9]{1,3})?`),
	}
}

// Category returns the category this validator handles.
func (v *Validator) Category() detector.Category {
	return detector.CategoryBankCard
}

// FindCandidates scans a cell value for card-shaped digit runs.
func (v *Validator) FindCandidates(text string) []detector.Candidate {
	var candidates []detector.Candidate

	for _, loc := range v.pattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !digitBoundary(text, start, end) {
			continue
		}
		candidates = append(candidates, detector.Candidate{
			Category: detector.CategoryBankCard,
			Text:     text[start:end],
			Start:    start,
			End:      end,
		})
	}

	return candidates
}

// Validate strips separators and applies the Luhn check: from the
// rightmost digit, double every second digit, subtract 9 from doubled
// values over 9, and require the total to divide by 10.
func (v *Validator) Validate(candidate detector.Candidate) detector.Verdict {
	normalized := Normalize(candidate.Text)

	verdict := detector.Verdict{
		Candidate:  candidate,
		Normalized: normalized,
	}

	if len(normalized) < 13 || len(normalized) > 19 {
		verdict.Reason = detector.ReasonBadFormat
		return verdict
	}

	if !luhnCheck(normalized) {
		verdict.Reason = detector.ReasonLuhnMismatch
		return verdict
	}

	verdict.Valid = true
	return verdict
}

// Normalize strips group separators, leaving the bare digit string.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

func luhnCheck(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func digitBoundary(text string, start, end int) bool {
	if start > 0 && text[start-1] >= '0' && text[start-1] <= '9' {
		return false
	}
	if end < len(text) && text[end] >= '0' && text[end] <= '9' {
		return false
	}
	return true
}
