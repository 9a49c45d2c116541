// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"time"
)

// DebugObserver provides detailed step-by-step debugging
type DebugObserver struct {
	*StandardObserver
}

// NewDebugObserver creates a debug observer with step-by-step logging
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
}

// StartStep begins a processing step
func (d *DebugObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	start := time.Now()

	fmt.Fprintf(d.writer, "-> %s: %s (%s)\n", component, step, filePath)

	return func(success bool, details string) {
		duration := time.Since(start)
		status := "done"
		if !success {
			status = "failed"
		}
		fmt.Fprintf(d.writer, "<- %s: %s %s (%dms) %s\n",
			component, step, status, duration.Milliseconds(), details)
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	fmt.Fprintf(d.writer, "   %s: %s\n", component, detail)
}
