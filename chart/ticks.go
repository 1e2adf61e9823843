// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// decades is a log-axis ticker. It labels powers of ten and marks the
// integer multiples between them. If the range holds fewer than two
// powers of ten, the 2x and 5x ticks are labeled too.
type decades struct{}

func (decades) Ticks(min, max float64) []plot.Tick {
	if !(min > 0) || !(max >= min) {
		return nil
	}
	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))

	var ticks []plot.Tick
	labeled := 0
	for e := lo; e <= hi; e++ {
		base := math.Pow(10, e)
		for m := 1.0; m < 10; m++ {
			v := m * base
			if v < min || v > max {
				continue
			}
			t := plot.Tick{Value: v}
			if m == 1 {
				t.Label = label(v)
				labeled++
			}
			ticks = append(ticks, t)
		}
	}
	if labeled < 2 {
		for i, t := range ticks {
			if m := t.Value / math.Pow(10, math.Floor(math.Log10(t.Value)+1e-9)); near(m, 2) || near(m, 5) {
				ticks[i].Label = label(t.Value)
			}
		}
	}
	return ticks
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
