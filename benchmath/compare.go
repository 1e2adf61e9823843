// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import "github.com/aclements/go-moremath/stats"

// A Comparison reports whether two samples of overhead differ in
// location.
type Comparison struct {
	N1, N2 int

	// P is the p-value of the two-sided Mann-Whitney U-test.
	P float64

	// WelchP is the p-value of the two-sided Welch t-test, which
	// assumes both samples are normally distributed.
	WelchP float64

	// Warnings lists tests that could not be performed. Their
	// p-values are reported as 1.
	Warnings []error
}

// Compare tests whether xs1 and xs2 differ in location.
func Compare(xs1, xs2 []float64) Comparison {
	c := Comparison{N1: len(xs1), N2: len(xs2), P: 1, WelchP: 1}
	if u, err := stats.MannWhitneyUTest(xs1, xs2, stats.LocationDiffers); err != nil {
		c.Warnings = append(c.Warnings, err)
	} else {
		c.P = u.P
	}
	t, err := stats.TwoSampleWelchTTest(stats.Sample{Xs: xs1}, stats.Sample{Xs: xs2}, stats.LocationDiffers)
	if err != nil {
		c.Warnings = append(c.Warnings, err)
	} else {
		c.WelchP = t.P
	}
	return c
}

// Significant reports whether the U-test p-value is below alpha.
func (c Comparison) Significant(alpha float64) bool {
	return c.P < alpha
}
