// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"sheet-scan/internal/core"
	"sheet-scan/internal/detector"
	"sheet-scan/internal/observability"
	"sheet-scan/internal/sheet"
)

// Job represents one file scan task. Index is the file's position in
// the input list and is what keeps the aggregated output deterministic.
type Job struct {
	Index int
	Path  string
}

// Result holds the outcome of one file scan.
type Result struct {
	Index    int
	Path     string
	Findings []detector.Finding
	Err      error
	Duration time.Duration
}

// Aggregator fans files out over a worker pool and reassembles the
// per-file results in input order, so the same inputs always produce
// the same output regardless of worker count or completion order.
type Aggregator struct {
	cfg      detector.RunConfig
	pipeline *core.Pipeline
	observer *observability.StandardObserver
}

// NewAggregator creates an aggregator for one run configuration. The
// observer may be nil.
func NewAggregator(cfg detector.RunConfig, observer *observability.StandardObserver) *Aggregator {
	return &Aggregator{
		cfg:      cfg,
		pipeline: core.NewPipeline(cfg, observer),
		observer: observer,
	}
}

// SetLoader replaces the workbook loader on the underlying pipeline.
// Tests use this to feed in-memory workbooks.
func (a *Aggregator) SetLoader(loader sheet.Loader) {
	a.pipeline.SetLoader(loader)
}

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return workers
}

// Run scans every file and returns the concatenation of per-file
// findings in input-list order, plus per-file errors for files that
// failed. File errors are isolated: one bad file never affects its
// siblings' results.
//
// On cancellation the findings of files that completed before the
// cancel are still returned, along with ErrRunCancelled.
func (a *Aggregator) Run(ctx context.Context, files []string) ([]detector.Finding, []detector.FileError, *ProcessingStats, error) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if a.observer != nil {
		finishTiming = a.observer.StartTiming("aggregator", "run", "")
	}

	workers := a.cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan Job, len(files))
	for i, path := range files {
		jobs <- Job{Index: i, Path: path}
	}
	close(jobs)

	// One slot per input file; each worker writes only the slots of
	// the jobs it took, so no locking is needed.
	results := make([]Result, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.Index] = a.runJob(ctx, job)
			}
		}()
	}
	wg.Wait()

	var findings []detector.Finding
	var fileErrors []detector.FileError
	cancelled := false
	processed := 0

	for _, r := range results {
		switch {
		case r.Err == nil:
			findings = append(findings, r.Findings...)
			processed++
		case errors.Is(r.Err, detector.ErrRunCancelled) || errors.Is(r.Err, context.Canceled):
			cancelled = true
		default:
			fileErrors = append(fileErrors, detector.FileError{File: r.Path, Err: r.Err})
		}
	}

	stats := buildStats(len(files), processed, workers, time.Since(start), findings)

	if finishTiming != nil {
		finishTiming(!cancelled, map[string]interface{}{
			"processed_files": processed,
			"finding_count":   len(findings),
			"file_errors":     len(fileErrors),
		})
	}

	if cancelled {
		return findings, fileErrors, stats, detector.ErrRunCancelled
	}
	return findings, fileErrors, stats, nil
}

func (a *Aggregator) runJob(ctx context.Context, job Job) Result {
	start := time.Now()

	select {
	case <-ctx.Done():
		return Result{Index: job.Index, Path: job.Path, Err: detector.ErrRunCancelled}
	default:
	}

	findings, err := a.pipeline.ScanFile(ctx, job.Path)
	return Result{
		Index:    job.Index,
		Path:     job.Path,
		Findings: findings,
		Err:      err,
		Duration: time.Since(start),
	}
}
