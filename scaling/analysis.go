// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"sort"

	"github.com/polysim/overheadstat/benchmath"
)

// A Fit is the scaling analysis of one group.
//
// Each statistic carries its own error. A non-nil error is a
// *benchmath.NotComputable and only means that statistic is missing
// for this group.
type Fit struct {
	Group *Group

	// PowerLaw is fitted to the group's strictly positive samples.
	PowerLaw    benchmath.PowerLaw
	PowerLawErr error

	// CV is the coefficient of variation of x·y over the group's
	// samples.
	CV    float64
	CVErr error

	// Inverse is the 1/x reference anchored at the medians of the
	// group's strictly positive samples.
	Inverse    benchmath.Inverse
	InverseErr error
}

// FitGroup computes the power-law fit, scaling CV and 1/x reference of
// g.
func FitGroup(g *Group) *Fit {
	xs, ys := g.XY()
	f := &Fit{Group: g}
	f.PowerLaw, f.PowerLawErr = benchmath.FitPowerLaw(xs, ys)
	f.CV, f.CVErr = benchmath.ScalingCV(xs, ys)
	f.Inverse, f.InverseErr = benchmath.InverseRef(xs, ys)
	return f
}

// A RuntimeTable is the scaling of one metric against untraced
// runtime, per workload level.
type RuntimeTable struct {
	Metric Metric
	Levels []*Fit // in workload.Levels order, only levels with runs

	// All fits every run regardless of level. Its 1/x reference is
	// the common reference for the whole table.
	All *Fit

	// Comparisons test every pair of Levels for a difference in
	// overhead.
	Comparisons []*LevelComparison
}

// A LevelComparison tests whether the overhead of two workload levels
// differs.
type LevelComparison struct {
	A, B *Fit
	benchmath.Comparison
}

// A TierTable is the scaling of overhead against total data size for
// one file-size tier.
type TierTable struct {
	TierMB float64

	// Sizes has one group per total data size, in ascending order.
	// Each group's Summary holds the mean, standard deviation and
	// repeat count of the overhead at that size.
	Sizes []*Group

	// PowerLaw is fitted to the (total size, mean overhead) pairs.
	PowerLaw    benchmath.PowerLaw
	PowerLawErr error

	// AvgStdDev is the mean of the per-size standard deviations.
	AvgStdDev float64
}

// An Analysis is the complete result of one pipeline run.
type Analysis struct {
	Runs     int // valid runs analyzed
	Rejected int // rows skipped by the parser

	Runtime []*RuntimeTable

	DataSizeMetric Metric
	DataSize       []*TierTable

	FileCountMetric Metric
	FileCount       []*Fit // one per benchmark with known file counts
}

// Options configure Analyze.
type Options struct {
	// RuntimeMetrics are analyzed against runtime, per level.
	RuntimeMetrics []Metric

	// DataSizeMetric is analyzed against total data size per
	// file-size tier.
	DataSizeMetric Metric

	// FileCountMetric is analyzed against file count per benchmark.
	FileCountMetric Metric
}

// DefaultOptions analyzes post-processing and tracing overhead against
// runtime, traced CPU overhead against data size, and tracing overhead
// against file count.
var DefaultOptions = Options{
	RuntimeMetrics:  []Metric{PostProc, Tracing},
	DataSizeMetric:  TracedCPU,
	FileCountMetric: Tracing,
}

// Analyze aggregates and fits the runs of c. If opts is nil,
// DefaultOptions is used. It returns ErrEmptyInput if c has no valid
// runs; every other failure is local to a group and recorded in the
// Analysis.
func Analyze(c *Collection, opts *Options) (*Analysis, error) {
	if len(c.Runs) == 0 {
		return nil, ErrEmptyInput
	}
	if opts == nil {
		opts = &DefaultOptions
	}
	a := &Analysis{
		Runs:            len(c.Runs),
		Rejected:        len(c.Rejected),
		DataSizeMetric:  opts.DataSizeMetric,
		FileCountMetric: opts.FileCountMetric,
	}

	// Runtime and file count groups are fitted log-log, so only
	// strictly positive samples belong to them.
	allKey := Key{Benchmark: "all"}
	for _, m := range opts.RuntimeMetrics {
		t := &RuntimeTable{Metric: m}
		value := VsRuntime(m)
		for _, g := range Aggregate(c.Runs, Positive(ByLevel, value), value) {
			t.Levels = append(t.Levels, FitGroup(g))
		}
		all := Aggregate(c.Runs, Positive(func(*Run) (Key, bool) { return allKey, true }, value), value)
		if len(all) == 0 {
			all = []*Group{{Key: allKey}}
		}
		t.All = FitGroup(all[0])
		for i, a := range t.Levels {
			for _, b := range t.Levels[i+1:] {
				_, ya := a.Group.XY()
				_, yb := b.Group.XY()
				t.Comparisons = append(t.Comparisons, &LevelComparison{a, b, benchmath.Compare(ya, yb)})
			}
		}
		a.Runtime = append(a.Runtime, t)
	}

	a.DataSize = tierTables(Aggregate(c.Runs, Measured(ByDataSize, opts.DataSizeMetric), VsTotalMB(opts.DataSizeMetric)))

	withFiles := func(r *Run) (Key, bool) {
		if !r.HasFileCount {
			return Key{}, false
		}
		return ByBenchmark(r)
	}
	files := VsFileCount(opts.FileCountMetric)
	for _, g := range Aggregate(c.Runs, Positive(Measured(withFiles, opts.FileCountMetric), files), files) {
		a.FileCount = append(a.FileCount, FitGroup(g))
	}
	return a, nil
}

// tierTables splits data-size groups by tier and fits each tier's mean
// overheads.
func tierTables(groups []*Group) []*TierTable {
	byTier := make(map[float64]*TierTable)
	var tables []*TierTable
	for _, g := range groups {
		t := byTier[g.Key.TierMB]
		if t == nil {
			t = &TierTable{TierMB: g.Key.TierMB}
			byTier[g.Key.TierMB] = t
			tables = append(tables, t)
		}
		t.Sizes = append(t.Sizes, g)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TierMB < tables[j].TierMB })

	for _, t := range tables {
		sort.Slice(t.Sizes, func(i, j int) bool { return t.Sizes[i].Key.TotalMB < t.Sizes[j].Key.TotalMB })
		xs := make([]float64, len(t.Sizes))
		means := make([]float64, len(t.Sizes))
		var sumStd float64
		for i, g := range t.Sizes {
			xs[i] = g.Key.TotalMB
			means[i] = g.Summary.Mean
			sumStd += g.Summary.StdDev
		}
		t.AvgStdDev = sumStd / float64(len(t.Sizes))
		t.PowerLaw, t.PowerLawErr = benchmath.FitPowerLaw(xs, means)
	}
	return tables
}
