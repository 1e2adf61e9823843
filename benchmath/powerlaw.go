// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientSamples indicates fewer usable samples than a
	// statistic needs.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrDegenerateFit indicates that all x values coincide in log
	// space, so no slope exists.
	ErrDegenerateFit = errors.New("all x values coincide")

	// ErrZeroMean indicates a coefficient of variation over values
	// whose mean is zero.
	ErrZeroMean = errors.New("mean is zero")
)

// A NotComputable reports that a statistic could not be computed for a
// sample. Err is one of ErrInsufficientSamples, ErrDegenerateFit or
// ErrZeroMean, and is reachable through errors.Is.
type NotComputable struct {
	What string
	Err  error
}

func (e *NotComputable) Error() string {
	return e.What + " not computable: " + e.Err.Error()
}

func (e *NotComputable) Unwrap() error {
	return e.Err
}

// A PowerLaw is the model y = 10^Intercept · x^Slope, that is
// log10(y) = Slope·log10(x) + Intercept.
type PowerLaw struct {
	Slope, Intercept float64

	// N is the number of samples the model was fitted to, and
	// XMin and XMax bound their x values.
	N          int
	XMin, XMax float64
}

// Eval returns the model's prediction at x.
func (p PowerLaw) Eval(x float64) float64 {
	return math.Pow(10, p.Slope*math.Log10(x)+p.Intercept)
}

// String formats p as "y = k·x^m".
func (p PowerLaw) String() string {
	return fmt.Sprintf("y = %.4g·x^%.3f", math.Pow(10, p.Intercept), p.Slope)
}

// FitPowerLaw fits a PowerLaw to the samples (xs[i], ys[i]) by
// ordinary least squares on (log10 x, log10 y).
//
// Samples with a non-positive x or y are dropped before fitting. If
// fewer than two samples remain, or all remaining x are equal, it
// returns a *NotComputable error.
func FitPowerLaw(xs, ys []float64) (PowerLaw, error) {
	const what = "power-law fit"
	if len(xs) != len(ys) {
		panic("FitPowerLaw: len(xs) != len(ys)")
	}
	lx, ly := make([]float64, 0, len(xs)), make([]float64, 0, len(ys))
	for i, x := range xs {
		if x > 0 && ys[i] > 0 {
			lx = append(lx, math.Log10(x))
			ly = append(ly, math.Log10(ys[i]))
		}
	}
	if len(lx) < 2 {
		return PowerLaw{}, &NotComputable{what, ErrInsufficientSamples}
	}
	lo, hi := floats.Min(lx), floats.Max(lx)
	if hi-lo <= 1e-12*math.Max(1, math.Abs(lo)) {
		return PowerLaw{}, &NotComputable{what, ErrDegenerateFit}
	}
	b, m := stat.LinearRegression(lx, ly, nil, false)
	return PowerLaw{
		Slope:     m,
		Intercept: b,
		N:         len(lx),
		XMin:      math.Pow(10, lo),
		XMax:      math.Pow(10, hi),
	}, nil
}

// An Inverse is the 1/x reference model y = K/x.
type Inverse struct {
	K float64
}

// Eval returns K/x.
func (r Inverse) Eval(x float64) float64 {
	return r.K / x
}

// InverseRef returns the 1/x reference curve anchored at the medians
// of the strictly positive samples, K = median(y)·median(x). It is
// independent of any regression fit.
func InverseRef(xs, ys []float64) (Inverse, error) {
	if len(xs) != len(ys) {
		panic("InverseRef: len(xs) != len(ys)")
	}
	var px, py []float64
	for i, x := range xs {
		if x > 0 && ys[i] > 0 {
			px = append(px, x)
			py = append(py, ys[i])
		}
	}
	if len(px) == 0 {
		return Inverse{}, &NotComputable{"1/x reference", ErrInsufficientSamples}
	}
	return Inverse{K: Median(py) * Median(px)}, nil
}

// ScalingCV returns the coefficient of variation, in percent, of the
// products xs[i]·ys[i] over all samples:
//
//	100 · stdev(x·y) / |mean(x·y)|
//
// If overhead is a fixed cost amortized over runtime, the product is
// constant and the CV is 0. Larger values mean the relationship is not
// simply inverse. The statistic is descriptive only.
//
// The CV is a magnitude: a negative mean product, as from overheads
// that are all negative, yields the same positive CV as its mirror
// image.
//
// It returns a *NotComputable error for fewer than two samples or a
// mean product of (nearly) zero.
func ScalingCV(xs, ys []float64) (float64, error) {
	const what = "scaling CV"
	if len(xs) != len(ys) {
		panic("ScalingCV: len(xs) != len(ys)")
	}
	if len(xs) < 2 {
		return 0, &NotComputable{what, ErrInsufficientSamples}
	}
	products := make([]float64, len(xs))
	floats.MulTo(products, xs, ys)
	mean := stat.Mean(products, nil)
	scale := floats.Norm(products, math.Inf(1))
	if math.Abs(mean) <= 1e-12*scale || mean == 0 {
		return 0, &NotComputable{what, ErrZeroMean}
	}
	return 100 * stat.StdDev(products, nil) / math.Abs(mean), nil
}
