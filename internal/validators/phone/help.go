// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import "sheet-scan/internal/help"

// GetCheckInfo returns standardized information about the phone check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PHONE",
		ShortDescription: "Detects mainland CN mobile phone numbers",
		DetailedDescription: `The PHONE check detects mainland China mobile numbers in spreadsheet cells.

A candidate is an 11-digit run starting with 1 whose second digit is 3-9, optionally carrying a +86 or 86 country prefix and single separators (dash, space, dot) at the 3-4-4 group boundaries. Candidates embedded in longer digit runs are ignored.

Validation is structural only: after stripping separators and the country prefix the number must be exactly 11 digits in the 1[3-9] range. No carrier or segment database is consulted.`,

		Patterns: []string{
			"Bare: 13812345678",
			"Grouped: 138-1234-5678, 138 1234 5678",
			"With country prefix: +86 13812345678, 8613812345678",
		},

		ValidationRules: []string{
			"Exactly 11 digits after normalization",
			"First digit 1, second digit 3-9",
		},

		Limitations: []string{
			"Fixed-line and international non-CN numbers are not detected",
			"No live carrier lookup; structurally plausible numbers validate",
		},

		Examples: []string{
			"sheet-scan -checks PHONE data.xlsx",
		},
	}
}
