// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPowerLaw(t *testing.T) {
	check := func(k, m float64) {
		t.Helper()
		var xs, ys []float64
		for x := 1.0; x <= 1000; x *= 1.7 {
			xs = append(xs, x)
			ys = append(ys, k*math.Pow(x, m))
		}
		fit, err := FitPowerLaw(xs, ys)
		require.NoError(t, err)
		assert.InDelta(t, m, fit.Slope, 1e-6)
		assert.InDelta(t, math.Log10(k), fit.Intercept, 1e-6)
		assert.Equal(t, len(xs), fit.N)
		assert.Equal(t, 1.0, fit.XMin)
		assert.InDelta(t, xs[len(xs)-1], fit.XMax, 1e-9*fit.XMax)
		assert.InDelta(t, k*math.Pow(50, m), fit.Eval(50), 1e-6*k*math.Pow(50, m))
	}

	check(3, 1.5)
	check(1000, -1)
	check(0.2, 0)
}

func TestFitPowerLawInverse(t *testing.T) {
	// Overhead that is a fixed cost amortized over runtime.
	xs := []float64{100, 200, 400, 800, 1600}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 5000 / x
	}
	fit, err := FitPowerLaw(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, -1, fit.Slope, 1e-9)

	cv, err := ScalingCV(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 0, cv, 1e-9)

	// Two samples on an exact inverse.
	fit, err = FitPowerLaw([]float64{100, 1000}, []float64{20, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1, fit.Slope, 1e-9)
	assert.Equal(t, 2, fit.N)
	cv, err = ScalingCV([]float64{100, 1000}, []float64{20, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cv)
}

func TestFitPowerLawFiltersNonPositive(t *testing.T) {
	xs := []float64{1, 10, 100, 0, -5, 1000}
	ys := []float64{2, 20, 200, 7, 7, -1}
	fit, err := FitPowerLaw(xs, ys)
	require.NoError(t, err)
	assert.Equal(t, 3, fit.N)
	assert.InDelta(t, 1, fit.Slope, 1e-9)
}

func TestFitPowerLawNotComputable(t *testing.T) {
	check := func(xs, ys []float64, want error) {
		t.Helper()
		_, err := FitPowerLaw(xs, ys)
		assert.ErrorIs(t, err, want)
		var nc *NotComputable
		assert.ErrorAs(t, err, &nc)
	}

	check(nil, nil, ErrInsufficientSamples)
	check([]float64{10}, []float64{1}, ErrInsufficientSamples)
	check([]float64{10, 20}, []float64{1, 0}, ErrInsufficientSamples)
	check([]float64{10, 10, 10}, []float64{1, 2, 3}, ErrDegenerateFit)
}

func TestInverseRef(t *testing.T) {
	ref, err := InverseRef([]float64{100, 200, 400}, []float64{10, 5, 2.5})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, ref.K)
	assert.Equal(t, 5.0, ref.Eval(200))

	// Medians are taken independently and over positive samples
	// only.
	ref, err = InverseRef([]float64{1, 2, 3, 4, 0}, []float64{8, 6, 4, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, 2.5*5, ref.K)

	_, err = InverseRef([]float64{1}, []float64{-1})
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestScalingCV(t *testing.T) {
	cv, err := ScalingCV([]float64{1, 2, 3, 4}, []float64{10, 10, 10, 10})
	require.NoError(t, err)
	// Products 10, 20, 30, 40: mean 25, sample stdev sqrt(500/3).
	assert.InDelta(t, 100*math.Sqrt(500.0/3)/25, cv, 1e-9)

	// A negative mean product gives the same CV as its mirror.
	cv, err = ScalingCV([]float64{1, 2}, []float64{-10, -10})
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Sqrt(50)/15, cv, 1e-9)
	mirror, err := ScalingCV([]float64{1, 2}, []float64{10, 10})
	require.NoError(t, err)
	assert.Equal(t, mirror, cv)

	_, err = ScalingCV([]float64{5}, []float64{1})
	assert.ErrorIs(t, err, ErrInsufficientSamples)

	_, err = ScalingCV([]float64{1, 1}, []float64{3, -3})
	assert.ErrorIs(t, err, ErrZeroMean)
}

func TestPowerLawString(t *testing.T) {
	assert.Equal(t, "y = 100·x^-1.000", PowerLaw{Slope: -1, Intercept: 2}.String())
}
