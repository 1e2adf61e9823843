// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaling implements the overhead scaling analysis: it turns
// raw run records into classified, metric-annotated runs, groups them,
// and fits power-law and 1/x models to each group.
//
// The pipeline is a single forward pass:
//
//	parse → resolve → classify → compute metrics → aggregate → fit
//
// A Collection covers the first four stages and Analyze the last two.
// Nothing is shared between Collections.
package scaling

import (
	"io"

	"github.com/pkg/errors"

	"github.com/polysim/overheadstat/benchconf"
	"github.com/polysim/overheadstat/overhead"
	"github.com/polysim/overheadstat/runfmt"
	"github.com/polysim/overheadstat/workload"
)

// ErrEmptyInput is returned by Analyze when no valid run was added.
var ErrEmptyInput = errors.New("no valid runs")

// A Run is a valid run record annotated with its workload class,
// overhead metrics, and descriptor data.
type Run struct {
	Record  *runfmt.RunRecord
	Level   workload.Level
	Metrics overhead.Metrics

	// FileCount is the number of files the run wrote, from the
	// benchmark descriptor.
	FileCount    int
	HasFileCount bool

	// FileSizeMB is the file-size tier of the benchmark, or 0.
	FileSizeMB float64
}

// TotalMB returns the total data size written by the run, or 0 if the
// run has no file-size tier or file count.
func (r *Run) TotalMB() float64 {
	if r.FileSizeMB <= 0 || !r.HasFileCount {
		return 0
	}
	return r.FileSizeMB * float64(r.FileCount)
}

// A Collection accumulates runs from one or more results files.
type Collection struct {
	// Classifier assigns workload levels. If nil, it defaults to
	// workload.Default().
	Classifier *workload.Classifier

	// Descriptors supplies file counts and file-size tiers. It may be
	// nil.
	Descriptors benchconf.Set

	// Runs holds the valid runs in input order.
	Runs []*Run

	// Rejected holds a diagnostic for every skipped row.
	Rejected []*runfmt.RowError
}

// AddFile reads all records from r. Rejected rows are recorded in
// c.Rejected; only I/O and header errors are returned.
func (c *Collection) AddFile(fileName string, r io.Reader) error {
	rd := runfmt.NewReader(r, fileName)
	for rd.Scan() {
		c.add(rd.Result())
	}
	return rd.Err()
}

// AddFiles reads all records from files.
func (c *Collection) AddFiles(files *runfmt.Files) error {
	for files.Scan() {
		c.add(files.Result())
	}
	return files.Err()
}

func (c *Collection) add(rec runfmt.Record) {
	switch rec := rec.(type) {
	case *runfmt.RunRecord:
		c.AddRecord(rec)
	case *runfmt.RowError:
		c.Rejected = append(c.Rejected, rec)
	}
}

// AddRecord classifies rec, computes its metrics and adds it to c.
// rec must be valid; Reader only produces valid records.
func (c *Collection) AddRecord(rec *runfmt.RunRecord) *Run {
	if c.Classifier == nil {
		c.Classifier = workload.Default()
	}
	run := &Run{
		Record:  rec,
		Level:   c.Classifier.ClassifyTagged(rec.Benchmark),
		Metrics: overhead.Compute(rec),
	}
	if d, ok := c.Descriptors.Lookup(rec.Benchmark); ok {
		run.FileCount, run.HasFileCount = d.FileCount(rec.Step, rec.HasStep)
		run.FileSizeMB = d.FileSizeMB
	}
	c.Runs = append(c.Runs, run)
	return run
}

// NormRows returns the runs in the normalized overhead format, in
// input order. Rows with non-positive values are included; the
// normalized writer drops them.
func (c *Collection) NormRows() []runfmt.NormRow {
	rows := make([]runfmt.NormRow, len(c.Runs))
	for i, r := range c.Runs {
		rows[i] = runfmt.NormRow{
			RuntimeMs:    r.Record.WallUntraced,
			PostProcPct:  r.Metrics.PostProcPct,
			TracingPct:   r.Metrics.TracingPct,
			Level:        r.Level,
			Benchmark:    r.Record.Benchmark,
			FileCount:    r.FileCount,
			HasFileCount: r.HasFileCount,
		}
	}
	return rows
}

// AddNorm adds runs read back from the normalized overhead format.
// Their timings are reconstructed from the percentages, and their
// level and file count are taken from the rows as written.
func (c *Collection) AddNorm(rows []runfmt.NormRow) {
	for _, row := range rows {
		rec := &runfmt.RunRecord{
			Benchmark:    row.Benchmark,
			WallUntraced: row.RuntimeMs,
			WallTraced:   row.RuntimeMs * (1 + row.TracingPct/100),
			PostProc:     row.RuntimeMs * row.PostProcPct / 100,
			HasPostProc:  true,
		}
		run := &Run{
			Record:       rec,
			Level:        row.Level,
			Metrics:      overhead.Metrics{PostProcPct: row.PostProcPct, TracingPct: row.TracingPct},
			FileCount:    row.FileCount,
			HasFileCount: row.HasFileCount,
		}
		if d, ok := c.Descriptors.Lookup(row.Benchmark); ok {
			run.FileSizeMB = d.FileSizeMB
		}
		c.Runs = append(c.Runs, run)
	}
}

// Diagnostics returns the rejected rows as errors, in input order.
func (c *Collection) Diagnostics() []error {
	errs := make([]error, len(c.Rejected))
	for i, e := range c.Rejected {
		errs[i] = e
	}
	return errs
}
