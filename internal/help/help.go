// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a check
type CheckInfo struct {
	Name                string   // Name of the check (e.g., "ID_CARD")
	ShortDescription    string   // Short description for the checks list
	DetailedDescription string   // Detailed description of what the check does
	Patterns            []string // Patterns the check looks for
	ValidationRules     []string // Checksum/format rules applied to candidates
	Limitations         []string // Known limitations of the check
	Examples            []string // Usage examples
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	order     []string
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"subtitle": color.New(color.FgCyan, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"warning":  color.New(color.FgYellow),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	key := strings.ToLower(info.Name)
	if _, exists := h.providers[key]; !exists {
		h.order = append(h.order, key)
	}
	h.providers[key] = provider
}

// ShowChecksHelp lists every registered check with its short description
func (h *System) ShowChecksHelp() {
	h.colors["title"].Println("Available checks")
	fmt.Println("================")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range h.order {
		info := h.providers[key].GetCheckInfo()
		fmt.Fprintf(w, "  %s\t%s\n", info.Name, info.ShortDescription)
	}
	w.Flush()
	fmt.Println()
	fmt.Println("Use -explain <CHECK> for details about a specific check.")
}

// ShowCheckHelp displays detailed help for a single check. It returns
// false when the check name is unknown.
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Printf("%s check\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	if len(info.Patterns) > 0 {
		h.colors["header"].Println("PATTERNS:")
		for _, p := range info.Patterns {
			h.colors["item"].Printf("  - %s\n", p)
		}
		fmt.Println()
	}

	if len(info.ValidationRules) > 0 {
		h.colors["header"].Println("VALIDATION:")
		for _, r := range info.ValidationRules {
			h.colors["item"].Printf("  - %s\n", r)
		}
		fmt.Println()
	}

	if len(info.Limitations) > 0 {
		h.colors["header"].Println("LIMITATIONS:")
		for _, l := range info.Limitations {
			h.colors["warning"].Printf("  - %s\n", l)
		}
		fmt.Println()
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, e := range info.Examples {
			h.colors["example"].Printf("  %s\n", e)
		}
		fmt.Println()
	}

	return true
}
