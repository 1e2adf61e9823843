// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats a scaling analysis as tables, and renders
// those tables as text, HTML or an xlsx workbook.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/polysim/overheadstat/scaling"
)

// Format names accepted by Write.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatXlsx = "xlsx"
)

// Formats lists the supported formats.
var Formats = []string{FormatText, FormatHTML, FormatXlsx}

// notComputable is shown in place of a missing statistic.
const notComputable = "n/a"

// A Table is one titled section of a report.
type Table struct {
	Name   string
	Header []string
	Rows   [][]Cell

	// Notes explain every notComputable cell of the table.
	Notes []string
}

// A Cell is a formatted value. Value holds the raw number for
// numeric cells and is nil otherwise.
type Cell struct {
	Text  string
	Value interface{}
}

// Numeric reports whether c holds a number.
func (c Cell) Numeric() bool {
	return c.Value != nil
}

type builder struct {
	p *message.Printer
}

func (b builder) text(s string) Cell {
	return Cell{Text: s}
}

func (b builder) int(n int) Cell {
	return Cell{Text: b.p.Sprintf("%d", n), Value: n}
}

func (b builder) float(format string, v float64) Cell {
	return Cell{Text: b.p.Sprintf(format, v), Value: v}
}

// Tables builds the report tables of a. Numbers are formatted with
// English digit grouping.
func Tables(a *scaling.Analysis) []*Table {
	b := builder{message.NewPrinter(language.English)}
	var tables []*Table
	tables = append(tables, b.summary(a))
	for _, t := range a.Runtime {
		tables = append(tables, b.runtime(t))
		if len(t.Comparisons) > 0 {
			tables = append(tables, b.comparisons(t))
		}
	}
	if len(a.DataSize) > 0 {
		tables = append(tables, b.dataSizes(a), b.tierFits(a))
	}
	if len(a.FileCount) > 0 {
		tables = append(tables, b.fileCounts(a))
	}
	return tables
}

func (b builder) summary(a *scaling.Analysis) *Table {
	return &Table{
		Name:   "Input",
		Header: []string{"valid runs", "rejected rows"},
		Rows:   [][]Cell{{b.int(a.Runs), b.int(a.Rejected)}},
	}
}

// fitCells formats the statistics of f and appends a note for each one
// that is not computable.
func (b builder) fitCells(t *Table, name string, f *scaling.Fit) []Cell {
	var cells []Cell
	note := func(err error) Cell {
		t.Notes = append(t.Notes, fmt.Sprintf("%s: %v", name, err))
		return b.text(notComputable)
	}
	if f.PowerLawErr != nil {
		cells = append(cells, note(f.PowerLawErr), b.text(notComputable))
	} else {
		cells = append(cells, b.float("%.3f", f.PowerLaw.Slope), b.text(f.PowerLaw.String()))
	}
	if f.CVErr != nil {
		cells = append(cells, note(f.CVErr))
	} else {
		cells = append(cells, b.float("%.1f", f.CV))
	}
	if f.InverseErr != nil {
		cells = append(cells, note(f.InverseErr))
	} else {
		cells = append(cells, b.float("%.4g", f.Inverse.K))
	}
	return cells
}

func (b builder) runtime(rt *scaling.RuntimeTable) *Table {
	t := &Table{
		Name:   fmt.Sprintf("%s overhead vs runtime", rt.Metric),
		Header: []string{"level", "runs", "mean %", "stdev %", "slope", "fit", "CV %", "1/x K"},
	}
	row := func(name string, f *scaling.Fit) {
		s := f.Group.Summary
		cells := []Cell{b.text(name), b.int(s.Count), b.float("%.2f", s.Mean), b.float("%.2f", s.StdDev)}
		t.Rows = append(t.Rows, append(cells, b.fitCells(t, name, f)...))
	}
	for _, f := range rt.Levels {
		row(f.Group.Key.String(), f)
	}
	row("all", rt.All)
	return t
}

// alpha is the significance level of level comparisons.
const alpha = 0.05

func (b builder) comparisons(rt *scaling.RuntimeTable) *Table {
	t := &Table{
		Name:   fmt.Sprintf("%s overhead by level", rt.Metric),
		Header: []string{"levels", "runs", "U-test p", "Welch p", "differs"},
	}
	for _, c := range rt.Comparisons {
		name := fmt.Sprintf("%s vs %s", c.A.Group.Key, c.B.Group.Key)
		for _, w := range c.Warnings {
			t.Notes = append(t.Notes, fmt.Sprintf("%s: %v", name, w))
		}
		differs := "no"
		if c.Significant(alpha) {
			differs = "yes"
		}
		t.Rows = append(t.Rows, []Cell{
			b.text(name),
			b.text(fmt.Sprintf("%d+%d", c.N1, c.N2)),
			b.float("%.3f", c.P),
			b.float("%.3f", c.WelchP),
			b.text(differs),
		})
	}
	return t
}

func (b builder) dataSizes(a *scaling.Analysis) *Table {
	t := &Table{
		Name:   fmt.Sprintf("%s overhead vs total data size", a.DataSizeMetric),
		Header: []string{"file size MB", "total MB", "runs", "mean %", "stdev %"},
	}
	for _, tier := range a.DataSize {
		for _, g := range tier.Sizes {
			t.Rows = append(t.Rows, []Cell{
				b.float("%g", tier.TierMB),
				b.float("%g", g.Key.TotalMB),
				b.int(g.Summary.Count),
				b.float("%.2f", g.Summary.Mean),
				b.float("%.2f", g.Summary.StdDev),
			})
		}
	}
	return t
}

func (b builder) tierFits(a *scaling.Analysis) *Table {
	t := &Table{
		Name:   "Data size fits per file size",
		Header: []string{"file size MB", "sizes", "slope", "fit", "avg stdev %"},
	}
	for _, tier := range a.DataSize {
		row := []Cell{b.float("%g", tier.TierMB), b.int(len(tier.Sizes))}
		if tier.PowerLawErr != nil {
			t.Notes = append(t.Notes, fmt.Sprintf("%gMB: %v", tier.TierMB, tier.PowerLawErr))
			row = append(row, b.text(notComputable), b.text(notComputable))
		} else {
			row = append(row, b.float("%.3f", tier.PowerLaw.Slope), b.text(tier.PowerLaw.String()))
		}
		t.Rows = append(t.Rows, append(row, b.float("%.2f", tier.AvgStdDev)))
	}
	return t
}

func (b builder) fileCounts(a *scaling.Analysis) *Table {
	t := &Table{
		Name:   fmt.Sprintf("%s overhead vs file count", a.FileCountMetric),
		Header: []string{"benchmark", "runs", "files", "slope", "fit", "CV %", "1/x K"},
	}
	for _, f := range a.FileCount {
		name := f.Group.Key.Benchmark
		files := b.text("")
		if n := len(f.Group.Points); n > 0 {
			files = b.text(b.p.Sprintf("%d-%d", int(f.Group.Points[0].X), int(f.Group.Points[n-1].X)))
		}
		cells := []Cell{b.text(name), b.int(f.Group.Summary.Count), files}
		t.Rows = append(t.Rows, append(cells, b.fitCells(t, name, f)...))
	}
	return t
}

// Write renders the tables of a to w in the named format.
func Write(w io.Writer, format string, a *scaling.Analysis) error {
	tables := Tables(a)
	switch format {
	case FormatText, "":
		return WriteText(w, tables)
	case FormatHTML:
		return WriteHTML(w, tables)
	case FormatXlsx:
		return WriteXlsx(w, tables)
	}
	known := append([]string(nil), Formats...)
	sort.Strings(known)
	return errors.Errorf("unknown report format %q (want one of %v)", format, known)
}
