// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package idcard

import "sheet-scan/internal/help"

// GetCheckInfo returns standardized information about the ID card check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "ID_CARD",
		ShortDescription: "Detects 18-digit resident identity card numbers",
		DetailedDescription: `The ID_CARD check detects 18-character resident identity card numbers: 17 digits followed by a digit or X check character, with no separator tolerance.

Candidates are validated with the GB 11643 weighted mod-11 checksum and the embedded YYYYMMDD birth date, including the leap-year rule for February. The region code is checked structurally (non-zero leading digit); no administrative-division registry is consulted.

Numbers failing the date or checksum rule are still reported with an invalid verdict so reviewers can catch transcription errors.`,

		Patterns: []string{
			"18 consecutive characters: 17 digits + digit/X/x",
		},

		ValidationRules: []string{
			"Region code: non-zero leading digit",
			"Birth date: valid YYYYMMDD, year 1900-2099, leap-year aware",
			"Checksum: weighted sum mod 11 against check-code table, x == X",
		},

		Limitations: []string{
			"Legacy 15-digit numbers are not detected",
			"Region codes are not checked against the division registry",
		},

		Examples: []string{
			"sheet-scan -checks ID_CARD data.xlsx",
		},
	}
}
