// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bankcard

import "sheet-scan/internal/help"

// GetCheckInfo returns standardized information about the bank card check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "BANK_CARD",
		ShortDescription: "Detects bank card numbers (13-19 digits, Luhn-checked)",
		DetailedDescription: `The BANK_CARD check detects bank card numbers: runs of 13-19 digits, optionally separated by a single space or dash at 4-digit group boundaries.

Separators are stripped and the result is validated with the Luhn algorithm. Numbers failing the Luhn check are still reported with an invalid verdict.

Candidates that overlap a valid ID_CARD match in the same cell are suppressed, since a valid 18-digit resident ID would otherwise double-report as a card-shaped digit run.`,

		Patterns: []string{
			"Bare: 4111111111111111",
			"Grouped: 4111 1111 1111 1111, 6225-8801-2345-6789",
			"13-19 digits total",
		},

		ValidationRules: []string{
			"Luhn: double every second digit from the right, subtract 9 when over 9, total divisible by 10",
		},

		Limitations: []string{
			"No issuer (BIN) range verification",
		},

		Examples: []string{
			"sheet-scan -checks BANK_CARD data.xlsx",
		},
	}
}
