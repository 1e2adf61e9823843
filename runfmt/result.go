// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runfmt reads and writes the tabular formats produced by the
// traced/untraced benchmark harness.
//
// The raw results format has one row per benchmark run and the header
//
//	run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms
//
// where traced_ms and postproc_ms are optional. Reader turns each row
// into either a *RunRecord or a *RowError; a rejected row never stops
// the scan.
//
// The normalized format (see NormRow) is the derived per-run overhead
// table consumed by chart and report tooling.
package runfmt

import (
	"strconv"
	"strings"
)

// A RunRecord is one validated benchmark execution.
//
// A RunRecord returned by Reader is never modified afterwards, so
// callers may retain it.
type RunRecord struct {
	// RunID is the opaque run identifier, typically of the form
	// run_<benchmark>_step<index>_<repeat>.
	RunID string

	// Benchmark is the benchmark identifier derived from RunID (or
	// taken from an explicit benchmark_id column). It is never empty.
	Benchmark string

	// Step is the step index parsed from RunID. It is only
	// meaningful if HasStep is set.
	Step    int
	HasStep bool

	// WallUntraced and WallTraced are the wall-clock durations in
	// milliseconds of the baseline and the traced run. Both are > 0.
	WallUntraced float64
	WallTraced   float64

	// TracedCPU is the CPU time in milliseconds of the traced run.
	TracedCPU    float64
	HasTracedCPU bool

	// PostProc is the post-processing time in milliseconds.
	PostProc    float64
	HasPostProc bool

	fileName string
	line     int
}

// Pos returns the file name and line number of a RunRecord that was
// read by a Reader. For records built by hand, it returns "", 0.
func (r *RunRecord) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// unknownBenchmark is the benchmark id of runs whose identifier has
// no benchmark part.
const unknownBenchmark = "unknown"

// ParseRunID splits a run identifier of the form
// run_<benchmark>_step<index>_<repeat> into its benchmark id and step
// index.
//
// A leading "run_" is stripped. The benchmark id is everything before
// the first "_step", or the whole remaining string if there is no
// "_step"; an empty id becomes "unknown". The step index is the
// non-negative integer following "_step" up to the next "_", and ok
// reports whether one was found.
func ParseRunID(runID string) (benchmark string, step int, ok bool) {
	tail := strings.TrimPrefix(runID, "run_")
	head, rest, found := strings.Cut(tail, "_step")
	benchmark = head
	if benchmark == "" {
		benchmark = unknownBenchmark
	}
	if !found {
		return benchmark, 0, false
	}
	num, _, _ := strings.Cut(rest, "_")
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return benchmark, 0, false
	}
	return benchmark, n, true
}
