// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders scaling analyses as log-log charts.
//
// Each chart function returns a *plot.Plot, or nil if the analysis has
// nothing that can be drawn on its axes. Save and WriteAll write plots
// as PNG or SVG.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/polysim/overheadstat/scaling"
	"github.com/polysim/overheadstat/workload"
)

// Chart names written by WriteAll, without extension.
const (
	PostProcVsRuntime = "scaling_postproc_vs_runtime"
	TracingVsRuntime  = "scaling_tracing_vs_runtime"
	IOCategory        = "scaling_by_io_category"
	DataSizeOverhead  = "scaling_io_datasize_vs_overhead"
	TracingFileCount  = "scaling_tracing_vs_filecount"
)

// Options control the size and format of saved charts.
type Options struct {
	Width, Height vg.Length
	DPI           int
	SVG           bool
}

// DefaultOptions writes 12x6 inch PNGs at 100 dpi.
var DefaultOptions = Options{
	Width:  12 * vg.Inch,
	Height: 6 * vg.Inch,
	DPI:    100,
}

// fitSteps is the number of points used to draw a fitted curve.
const fitSteps = 100

var (
	violet  = rgb(0x8b, 0x5c, 0xf6)
	indigo  = rgb(0x63, 0x66, 0xf1)
	emerald = rgb(0x10, 0xb9, 0x81)
	amber   = rgb(0xf5, 0x9e, 0x0b)

	levelColor = map[workload.Level]color.Color{
		workload.None:   indigo,
		workload.Little: emerald,
		workload.Much:   amber,
	}
	levelGlyph = map[workload.Level]draw.GlyphDrawer{
		workload.None:   draw.CircleGlyph{},
		workload.Little: draw.BoxGlyph{},
		workload.Much:   draw.TriangleGlyph{},
	}
	levelLabel = map[workload.Level]string{
		workload.None:   "CPU only",
		workload.Little: "little I/O",
		workload.Much:   "much I/O",
	}
)

func rgb(r, g, b uint8) color.Color {
	return color.NRGBA{r, g, b, 0xff}
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = 16
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Add(plotter.NewGrid())
	return p
}

func logX(p *plot.Plot) {
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = decades{}
}

func logY(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = decades{}
}

// widen keeps single-valued log axes drawable.
func widen(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min /= 2
		a.Max *= 2
	}
}

// positive returns the points of g with x > 0 and y > 0.
func positive(g *scaling.Group) plotter.XYs {
	var xys plotter.XYs
	for _, pt := range g.Points {
		if pt.X > 0 && pt.Y > 0 {
			xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}
	return xys
}

func scatter(p *plot.Plot, xys plotter.XYs, clr color.Color, shape draw.GlyphDrawer, label string) error {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = clr
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(4)
	p.Add(s)
	p.Legend.Add(label, s)
	return nil
}

// curve draws f over [lo, hi] with log-spaced samples.
func curve(p *plot.Plot, lo, hi float64, f func(float64) float64, clr color.Color, dashed bool, label string) error {
	if !(lo > 0) || hi < lo {
		return nil
	}
	xys := make(plotter.XYs, 0, fitSteps)
	llo, lhi := math.Log10(lo), math.Log10(hi)
	for i := 0; i < fitSteps; i++ {
		x := math.Pow(10, llo+(lhi-llo)*float64(i)/(fitSteps-1))
		y := f(x)
		if y > 0 && !math.IsInf(y, 0) {
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
	}
	if len(xys) < 2 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Color = clr
	l.LineStyle.Width = vg.Points(2)
	if dashed {
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

func fitLine(p *plot.Plot, f *scaling.Fit, clr color.Color, name string) error {
	if f.PowerLawErr != nil {
		return nil
	}
	pl := f.PowerLaw
	return curve(p, pl.XMin, pl.XMax, pl.Eval, clr, false, fmt.Sprintf("%s fit slope ≈ %.2f", name, pl.Slope))
}

func reference(p *plot.Plot, f *scaling.Fit, clr color.Color) error {
	if f == nil || f.InverseErr != nil {
		return nil
	}
	xs := positive(f.Group)
	if len(xs) == 0 {
		return nil
	}
	lo, hi, _, _ := plotter.XYRange(xs)
	return curve(p, lo, hi, f.Inverse.Eval, clr, true, "1/x reference")
}

// Runtime plots a runtime table with one series for all runs, the
// "all" fit and the 1/x reference. It returns nil if no run has a
// positive runtime and overhead.
func Runtime(t *scaling.RuntimeTable, title string) (*plot.Plot, error) {
	xys := positive(t.All.Group)
	if len(xys) == 0 {
		return nil, nil
	}
	p := newPlot(title, "CPU_ms", "overhead (%)")
	logX(p)
	logY(p)
	name := t.Metric.String()
	if err := scatter(p, xys, violet, draw.CircleGlyph{}, name); err != nil {
		return nil, err
	}
	if err := fitLine(p, t.All, violet, name); err != nil {
		return nil, err
	}
	if err := reference(p, t.All, color.Black); err != nil {
		return nil, err
	}
	widen(&p.X)
	widen(&p.Y)
	return p, nil
}

// ByLevel plots a runtime table with one series and fit per workload
// level, and the 1/x reference of all runs. Level legends carry the
// scaling CV when it is computable. If levels is empty, every level is
// drawn.
func ByLevel(t *scaling.RuntimeTable, title string, levels ...workload.Level) (*plot.Plot, error) {
	p := newPlot(title, "CPU_ms", "overhead (%)")
	logX(p)
	logY(p)
	drawn := 0
	for _, f := range t.Levels {
		lvl := f.Group.Key.Level
		if len(levels) > 0 && !hasLevel(levels, lvl) {
			continue
		}
		xys := positive(f.Group)
		if len(xys) == 0 {
			continue
		}
		drawn++
		label := levelLabel[lvl]
		if f.CVErr == nil {
			label = fmt.Sprintf("%s (CV %.0f%%)", label, f.CV)
		}
		if err := scatter(p, xys, levelColor[lvl], levelGlyph[lvl], label); err != nil {
			return nil, err
		}
		if err := fitLine(p, f, levelColor[lvl], levelLabel[lvl]); err != nil {
			return nil, err
		}
	}
	if drawn == 0 {
		return nil, nil
	}
	if err := reference(p, t.All, color.Black); err != nil {
		return nil, err
	}
	widen(&p.X)
	widen(&p.Y)
	return p, nil
}

func hasLevel(levels []workload.Level, l workload.Level) bool {
	for _, x := range levels {
		if x == l {
			return true
		}
	}
	return false
}

// meanErrors is a series of means with standard deviation error bars.
type meanErrors struct {
	plotter.XYs
	plotter.YErrors
}

// DataSize plots the mean overhead per total data size for each
// file-size tier, with standard deviation error bars, on a log x axis.
func DataSize(tiers []*scaling.TierTable, m scaling.Metric) (*plot.Plot, error) {
	if len(tiers) == 0 {
		return nil, nil
	}
	p := newPlot(fmt.Sprintf("Mean %s overhead vs total data size", m), "Total data size (MB)", "Overhead (%)")
	logX(p)
	colors := palette(len(tiers))
	for i, t := range tiers {
		pts := meanErrors{
			XYs:     make(plotter.XYs, len(t.Sizes)),
			YErrors: make(plotter.YErrors, len(t.Sizes)),
		}
		for j, g := range t.Sizes {
			pts.XYs[j] = plotter.XY{X: g.Key.TotalMB, Y: g.Summary.Mean}
			pts.YErrors[j].Low = g.Summary.StdDev
			pts.YErrors[j].High = g.Summary.StdDev
		}
		clr := colors[i]
		line, points, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = clr
		line.LineStyle.Width = vg.Points(2)
		points.GlyphStyle.Color = clr
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(4)
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Color = clr
		p.Add(line, points, bars)
		label := fmt.Sprintf("%gMB files", t.TierMB)
		if t.PowerLawErr == nil {
			label = fmt.Sprintf("%s (slope %.2f)", label, t.PowerLaw.Slope)
		}
		p.Legend.Add(label, line, points)
	}
	widen(&p.X)
	return p, nil
}

// FileCount plots overhead against file count with one series and fit
// per benchmark.
func FileCount(fits []*scaling.Fit, m scaling.Metric) (*plot.Plot, error) {
	p := newPlot(fmt.Sprintf("%s overhead vs file count", m), "File count", "Overhead (%)")
	logX(p)
	logY(p)
	colors := palette(len(fits))
	shapes := []draw.GlyphDrawer{draw.CircleGlyph{}, draw.BoxGlyph{}, draw.TriangleGlyph{}, draw.PyramidGlyph{}}
	drawn := 0
	for i, f := range fits {
		xys := positive(f.Group)
		if len(xys) == 0 {
			continue
		}
		drawn++
		name := f.Group.Key.Benchmark
		if err := scatter(p, xys, colors[i], shapes[i%len(shapes)], name); err != nil {
			return nil, err
		}
		if err := fitLine(p, f, colors[i], name); err != nil {
			return nil, err
		}
	}
	if drawn == 0 {
		return nil, nil
	}
	widen(&p.X)
	widen(&p.Y)
	return p, nil
}

// palette returns n distinct qualitative colors.
func palette(n int) []color.Color {
	const name, max = "Dark2", 8
	k := n
	if k < 3 {
		k = 3
	}
	if k > max {
		k = max
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, name, k)
	if err != nil {
		panic(err)
	}
	base := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// Save writes p to dir/name.png, or dir/name.svg if opts.SVG is set,
// and returns the path written.
func Save(p *plot.Plot, dir, name string, opts Options) (string, error) {
	if opts.SVG {
		file := filepath.Join(dir, name) + ".svg"
		if err := p.Save(opts.Width, opts.Height, file); err != nil {
			return "", errors.Wrapf(err, "writing %s", file)
		}
		return file, nil
	}

	file := filepath.Join(dir, name) + ".png"
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseDPI(opts.DPI),
		vgimg.UseBackgroundColor(color.White))}
	p.Draw(draw.New(can))
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "writing %s", file)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "writing %s", file)
	}
	return file, nil
}

// WriteAll renders every chart a has data for into dir, creating dir
// if needed, and returns the paths written.
func WriteAll(a *scaling.Analysis, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}

	type named struct {
		name string
		p    *plot.Plot
	}
	var plots []named
	add := func(name string, p *plot.Plot, err error) error {
		if err != nil {
			return errors.Wrapf(err, "building %s", name)
		}
		if p != nil {
			plots = append(plots, named{name, p})
		}
		return nil
	}

	if t := runtimeTable(a, scaling.PostProc); t != nil {
		p, err := Runtime(t, "Post-processing overhead vs wall-time")
		if err := add(PostProcVsRuntime, p, err); err != nil {
			return nil, err
		}
	}
	if t := runtimeTable(a, scaling.Tracing); t != nil {
		p, err := ByLevel(t, "Tracing overhead vs wall-time", workload.Little, workload.Much)
		if err := add(TracingVsRuntime, p, err); err != nil {
			return nil, err
		}
		p, err = ByLevel(t, "Overhead vs wall-time by I/O category")
		if err := add(IOCategory, p, err); err != nil {
			return nil, err
		}
	}
	p, err := DataSize(a.DataSize, a.DataSizeMetric)
	if err := add(DataSizeOverhead, p, err); err != nil {
		return nil, err
	}
	p, err = FileCount(a.FileCount, a.FileCountMetric)
	if err := add(TracingFileCount, p, err); err != nil {
		return nil, err
	}

	var files []string
	for _, n := range plots {
		file, err := Save(n.p, dir, n.name, opts)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func runtimeTable(a *scaling.Analysis, m scaling.Metric) *scaling.RuntimeTable {
	for _, t := range a.Runtime {
		if t.Metric == m {
			return t
		}
	}
	return nil
}
