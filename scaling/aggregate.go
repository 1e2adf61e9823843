// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"fmt"
	"sort"

	"github.com/polysim/overheadstat/benchmath"
	"github.com/polysim/overheadstat/workload"
)

// A Metric selects which overhead percentage of a run is analyzed.
type Metric int

const (
	PostProc Metric = iota
	Tracing
	// TracedCPU is the traced CPU time overhead. Runs without a
	// traced CPU time have no value for it.
	TracedCPU
)

func (m Metric) String() string {
	switch m {
	case PostProc:
		return "postproc"
	case Tracing:
		return "tracing"
	case TracedCPU:
		return "traced-cpu"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Of returns the value of metric m for run r. It is 0 if r has no
// value for m.
func (m Metric) Of(r *Run) float64 {
	switch m {
	case PostProc:
		return r.Metrics.PostProcPct
	case TracedCPU:
		return r.Metrics.TracedCPUPct
	}
	return r.Metrics.TracingPct
}

// Has reports whether run r has a value for metric m.
func (m Metric) Has(r *Run) bool {
	if m == TracedCPU {
		return r.Metrics.HasTracedCPU
	}
	return true
}

// A Key identifies a group. Callers fill in only the fields their
// grouping uses.
type Key struct {
	Level     workload.Level
	Benchmark string
	TierMB    float64 // file size tier
	TotalMB   float64 // total data size
}

func (k Key) String() string {
	switch {
	case k.TierMB > 0 && k.TotalMB > 0:
		return fmt.Sprintf("%gMB files/%gMB total", k.TierMB, k.TotalMB)
	case k.TierMB > 0:
		return fmt.Sprintf("%gMB files", k.TierMB)
	case k.Benchmark != "":
		return k.Benchmark
	}
	return k.Level.String()
}

func (k Key) less(o Key) bool {
	if k.Level != o.Level {
		return k.Level < o.Level
	}
	if k.Benchmark != o.Benchmark {
		return k.Benchmark < o.Benchmark
	}
	if k.TierMB != o.TierMB {
		return k.TierMB < o.TierMB
	}
	return k.TotalMB < o.TotalMB
}

// A Point is one sample of a group: x is the scaling variable and y
// the overhead.
type Point struct {
	X, Y float64
	Run  *Run
}

// A Group is a set of samples sharing a key, with a summary of their
// y values.
type Group struct {
	Key     Key
	Points  []Point // ascending x, ties in input order
	Summary benchmath.Summary
}

// XY returns the raw x and y values of g's points.
func (g *Group) XY() (xs, ys []float64) {
	xs = make([]float64, len(g.Points))
	ys = make([]float64, len(g.Points))
	for i, p := range g.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return
}

// A KeyFunc returns the group key of a run and whether the run belongs
// to any group.
type KeyFunc func(*Run) (Key, bool)

// A ValueFunc returns the (x, y) sample of a run.
type ValueFunc func(*Run) (x, y float64)

// Aggregate groups runs by key and summarizes the y values of each
// group with their mean, sample standard deviation and count. Groups
// are returned in ascending key order.
//
// Aggregate summarizes every sample key admits. Groups that feed a
// log-log fit should use a key wrapped with Positive.
func Aggregate(runs []*Run, key KeyFunc, value ValueFunc) []*Group {
	byKey := make(map[Key]*Group)
	var groups []*Group
	for _, r := range runs {
		k, ok := key(r)
		if !ok {
			continue
		}
		g := byKey[k]
		if g == nil {
			g = &Group{Key: k}
			byKey[k] = g
			groups = append(groups, g)
		}
		x, y := value(r)
		g.Points = append(g.Points, Point{x, y, r})
	}
	for _, g := range groups {
		sort.SliceStable(g.Points, func(i, j int) bool {
			return g.Points[i].X < g.Points[j].X
		})
		_, ys := g.XY()
		g.Summary = benchmath.Summarize(ys)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.less(groups[j].Key)
	})
	return groups
}

// Positive restricts key to runs whose sample under value has x > 0
// and y > 0.
func Positive(key KeyFunc, value ValueFunc) KeyFunc {
	return func(r *Run) (Key, bool) {
		if x, y := value(r); !(x > 0 && y > 0) {
			return Key{}, false
		}
		return key(r)
	}
}

// Measured restricts key to runs that have a value for metric m.
func Measured(key KeyFunc, m Metric) KeyFunc {
	return func(r *Run) (Key, bool) {
		if !m.Has(r) {
			return Key{}, false
		}
		return key(r)
	}
}

// ByLevel groups runs by workload level.
func ByLevel(r *Run) (Key, bool) {
	return Key{Level: r.Level}, true
}

// ByBenchmark groups runs by benchmark id.
func ByBenchmark(r *Run) (Key, bool) {
	return Key{Benchmark: r.Record.Benchmark}, true
}

// ByDataSize groups runs of file-size-tiered benchmarks by tier and
// total data size.
func ByDataSize(r *Run) (Key, bool) {
	total := r.TotalMB()
	if total <= 0 {
		return Key{}, false
	}
	return Key{TierMB: r.FileSizeMB, TotalMB: total}, true
}

// VsRuntime samples metric m against the untraced wall time.
func VsRuntime(m Metric) ValueFunc {
	return func(r *Run) (float64, float64) {
		return r.Record.WallUntraced, m.Of(r)
	}
}

// VsFileCount samples metric m against the run's file count.
func VsFileCount(m Metric) ValueFunc {
	return func(r *Run) (float64, float64) {
		return float64(r.FileCount), m.Of(r)
	}
}

// VsTotalMB samples metric m against the run's total data size.
func VsTotalMB(m Metric) ValueFunc {
	return func(r *Run) (float64, float64) {
		return r.TotalMB(), m.Of(r)
	}
}
