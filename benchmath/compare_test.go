// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	c := Compare([]float64{1, 2, 3, 4, 5}, []float64{10, 11, 12, 13, 14})
	assert.Equal(t, 5, c.N1)
	assert.Equal(t, 5, c.N2)
	assert.Empty(t, c.Warnings)
	assert.Less(t, c.P, 0.05)
	assert.Less(t, c.WelchP, 0.05)
	assert.True(t, c.Significant(0.05))

	c = Compare([]float64{1, 5, 2, 4}, []float64{3, 2, 4, 1})
	assert.False(t, c.Significant(0.05))
}

func TestCompareUntestable(t *testing.T) {
	c := Compare([]float64{7, 7, 7}, []float64{7, 7})
	assert.Equal(t, 1.0, c.P)
	assert.Equal(t, 1.0, c.WelchP)
	assert.Len(t, c.Warnings, 2)
	assert.False(t, c.Significant(0.05))

	c = Compare(nil, []float64{1, 2})
	assert.Equal(t, 1.0, c.P)
	assert.NotEmpty(t, c.Warnings)
}
