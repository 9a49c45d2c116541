// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"sheet-scan/internal/detector"
	"sheet-scan/internal/help"
	"sheet-scan/internal/validators/bankcard"
	"sheet-scan/internal/validators/idcard"
	"sheet-scan/internal/validators/phone"
)

// ParseChecksToRun converts a slice of check names into an enabled-checks map.
// An empty slice or ["all"] enables every check. Unknown names are ignored.
func ParseChecksToRun(checks []string) map[detector.Category]bool {
	result := map[detector.Category]bool{
		detector.CategoryPhone:    false,
		detector.CategoryIDCard:   false,
		detector.CategoryBankCard: false,
	}

	if len(checks) == 0 || (len(checks) == 1 && strings.TrimSpace(checks[0]) == "all") {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, check := range checks {
		if cat := detector.Category(strings.ToUpper(strings.TrimSpace(check))); cat.Known() {
			result[cat] = true
		}
	}

	return result
}

// BuildValidatorSet constructs the matcher/validator pairs enabled by
// the run configuration, in canonical scan order. The category set is
// closed, so this is an exhaustive switch rather than a plugin registry.
func BuildValidatorSet(cfg detector.RunConfig) []detector.CategoryValidator {
	var result []detector.CategoryValidator

	for _, cat := range detector.AllCategories() {
		if !cfg.CheckEnabled(cat) {
			continue
		}
		switch cat {
		case detector.CategoryPhone:
			result = append(result, phone.NewValidator())
		case detector.CategoryIDCard:
			result = append(result, idcard.NewValidator())
		case detector.CategoryBankCard:
			result = append(result, bankcard.NewValidator())
		}
	}

	return result
}

// RegisterHelpProviders registers every check's help content with a
// help system, in canonical order.
func RegisterHelpProviders(h *help.System) {
	h.RegisterProvider(phone.NewValidator())
	h.RegisterProvider(idcard.NewValidator())
	h.RegisterProvider(bankcard.NewValidator())
}
