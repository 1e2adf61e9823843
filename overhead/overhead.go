// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overhead computes normalized overhead percentages of a
// traced run relative to its untraced baseline.
package overhead

import "github.com/polysim/overheadstat/runfmt"

// Metrics are the overhead percentages derived from one run.
type Metrics struct {
	// PostProcPct is post-processing time as a percentage of the
	// untraced wall time. It is 0 if the run has no post-processing
	// time.
	PostProcPct float64

	// TracingPct is the relative increase of traced over untraced
	// wall time. It is negative if the traced run was faster.
	TracingPct float64

	// TracedCPUPct is the relative increase of traced CPU time over
	// untraced wall time. It is only set if HasTracedCPU, which
	// requires a strictly positive traced CPU time.
	TracedCPUPct float64
	HasTracedCPU bool
}

// Compute derives the overhead metrics of a valid run record.
func Compute(r *runfmt.RunRecord) Metrics {
	var m Metrics
	if r.HasPostProc && r.PostProc > 0 {
		m.PostProcPct = 100 * r.PostProc / r.WallUntraced
	}
	m.TracingPct = Percent(r.WallTraced, r.WallUntraced)
	if r.HasTracedCPU && r.TracedCPU > 0 {
		m.TracedCPUPct = Percent(r.TracedCPU, r.WallUntraced)
		m.HasTracedCPU = true
	}
	return m
}

// Percent returns the relative increase of measured over baseline in
// percent, 100·(measured−baseline)/baseline. baseline must be
// non-zero.
func Percent(measured, baseline float64) float64 {
	return 100 * (measured - baseline) / baseline
}
