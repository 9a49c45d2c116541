// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"time"

	"sheet-scan/internal/detector"
)

// CategoryStats counts findings for one check category.
type CategoryStats struct {
	Total int `json:"total"`
	Valid int `json:"valid"`
}

// ProcessingStats summarizes one aggregator run.
type ProcessingStats struct {
	TotalFiles     int                                  `json:"total_files"`
	ProcessedFiles int                                  `json:"processed_files"`
	TotalFindings  int                                  `json:"total_findings"`
	ValidFindings  int                                  `json:"valid_findings"`
	Duration       time.Duration                        `json:"duration"`
	WorkerCount    int                                  `json:"worker_count"`
	AvgFileTime    time.Duration                        `json:"avg_file_time"`
	Categories     map[detector.Category]CategoryStats  `json:"categories"`
}

func buildStats(total, processed, workers int, duration time.Duration, findings []detector.Finding) *ProcessingStats {
	stats := &ProcessingStats{
		TotalFiles:     total,
		ProcessedFiles: processed,
		TotalFindings:  len(findings),
		Duration:       duration,
		WorkerCount:    workers,
		Categories:     make(map[detector.Category]CategoryStats),
	}

	for _, cat := range detector.AllCategories() {
		stats.Categories[cat] = CategoryStats{}
	}

	for _, f := range findings {
		cs := stats.Categories[f.Verdict.Candidate.Category]
		cs.Total++
		if f.Verdict.Valid {
			cs.Valid++
			stats.ValidFindings++
		}
		stats.Categories[f.Verdict.Candidate.Category] = cs
	}

	if processed > 0 {
		stats.AvgFileTime = duration / time.Duration(processed)
	}

	return stats
}
