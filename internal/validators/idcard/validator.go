// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package idcard

import (
	"fmt"
	"regexp"
	"strings"

	"sheet-scan/internal/detector"
)

// Positional weights and check-code lookup for the 18-digit resident ID
// checksum (GB 11643): weighted sum of the first 17 digits mod 11 maps
// through checkCodes to the expected 18th character.
var (
	idWeights  = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}
	checkCodes = [11]byte{'1', '0', 'X', '9', '8', '7', '6', '5', '4', '3', '2'}
)

// Validator implements the detector.CategoryValidator interface for
// 18-digit resident ID numbers.
type Validator struct {
	pattern *regexp.Regexp
}

// NewValidator creates and returns a new Validator instance.
func NewValidator() *Validator {
	return &Validator{
		// 17 digits plus a digit or X/x check character, no separator
		// tolerance. The matcher is deliberately loose about region and
		// date so malformed IDs surface as invalid verdicts instead of
		// being silently skipped.
		pattern: regexp.MustCompile(`[0-9]{17}[0-9Xx]`),
	}
}

// Category returns the category this validator handles.
func (v *Validator) Category() detector.Category {
	return detector.CategoryIDCard
}

// FindCandidates scans a cell value for 18-character ID-shaped runs.
func (v *Validator) FindCandidates(text string) []detector.Candidate {
	var candidates []detector.Candidate

	for _, loc := range v.pattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !idBoundary(text, start, end) {
			continue
		}
		candidates = append(candidates, detector.Candidate{
			Category: detector.CategoryIDCard,
			Text:     text[start:end],
			Start:    start,
			End:      end,
		})
	}

	return candidates
}

// Validate checks the region code structurally, the embedded birth date
// (including the leap-year rule), and the weighted mod-11 checksum.
// The check character comparison is case-insensitive (x == X).
func (v *Validator) Validate(candidate detector.Candidate) detector.Verdict {
	id := candidate.Text
	verdict := detector.Verdict{
		Candidate:  candidate,
		Normalized: strings.ToUpper(id),
	}

	if len(id) != 18 || !leadingDigits(id) {
		verdict.Reason = detector.ReasonBadFormat
		return verdict
	}

	// Region code: structural plausibility only, no registry lookup.
	if id[0] == '0' {
		verdict.Reason = detector.ReasonBadFormat
		return verdict
	}

	year, month, day, ok := parseBirthDate(id)
	if !ok {
		verdict.Reason = detector.ReasonBadDate
		return verdict
	}

	if expectedCheckCode(id) != upperByte(id[17]) {
		verdict.Reason = detector.ReasonChecksumMismatch
		return verdict
	}

	verdict.Valid = true
	verdict.BirthDate = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	return verdict
}

// expectedCheckCode computes the check character for the first 17
// digits of id. id must already be length-checked.
func expectedCheckCode(id string) byte {
	sum := 0
	for i := 0; i < 17; i++ {
		sum += int(id[i]-'0') * idWeights[i]
	}
	return checkCodes[sum%11]
}

// parseBirthDate extracts and validates the YYYYMMDD birth date in
// characters 7-14.
func parseBirthDate(id string) (year, month, day int, ok bool) {
	year = atoi(id[6:10])
	month = atoi(id[10:12])
	day = atoi(id[12:14])

	if year < 1900 || year > 2099 {
		return 0, 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day < 1 || day > daysInMonth(year, month) {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	}
	return 0
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func leadingDigits(id string) bool {
	for i := 0; i < 17; i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	last := id[17]
	return (last >= '0' && last <= '9') || last == 'X' || last == 'x'
}

func upperByte(b byte) byte {
	if b == 'x' {
		return 'X'
	}
	return b
}

// idBoundary rejects runs embedded in longer digit sequences or
// followed by another check-character candidate.
func idBoundary(text string, start, end int) bool {
	if start > 0 {
		prev := text[start-1]
		if prev >= '0' && prev <= '9' {
			return false
		}
	}
	if end < len(text) {
		next := text[end]
		if (next >= '0' && next <= '9') || next == 'X' || next == 'x' {
			return false
		}
	}
	return true
}
