// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath provides the statistics used to test how
// benchmark overhead scales with workload size.
//
// Statistics that cannot be computed for a sample (too few points, a
// degenerate fit) are reported as a *NotComputable error rather than
// as NaN, so callers can tell them apart and keep going with the
// remaining groups.
package benchmath

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

// A Summary summarizes a set of measurements.
type Summary struct {
	Count int

	// Mean and StdDev are the sample mean and the Bessel-corrected
	// sample standard deviation. StdDev is 0 for fewer than two
	// values.
	Mean, StdDev float64

	Median   float64
	Min, Max float64
}

// Summarize computes a Summary of values. It does not modify values.
// The Summary of an empty slice is the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := sortedSample(values)
	sum := Summary{
		Count:  len(values),
		Mean:   s.Mean(),
		Median: s.Quantile(0.5),
	}
	sum.Min, sum.Max = s.Bounds()
	sum.StdDev = sampleStdDev(values)
	return sum
}

// Median returns the median of values, interpolating between the two
// middle values of an even-sized sample.
func Median(values []float64) float64 {
	return sortedSample(values).Quantile(0.5)
}

func sortedSample(values []float64) stats.Sample {
	xs := append([]float64(nil), values...)
	sort.Float64s(xs)
	return stats.Sample{Xs: xs, Sorted: true}
}

// sampleStdDev returns the Bessel-corrected standard deviation of xs,
// or 0 if there are fewer than two values.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
