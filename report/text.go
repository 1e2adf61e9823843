// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/polysim/overheadstat/internal/texttab"
	"github.com/polysim/overheadstat/scaling"
)

// WriteText writes tables as aligned plain text. Numeric cells are
// right-aligned and notes follow their table.
func WriteText(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", t.Name); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row()
		for _, h := range t.Header {
			tab.Cell(h)
		}
		for _, row := range t.Rows {
			tab.Row()
			for _, c := range row {
				if c.Numeric() || c.Text == notComputable {
					tab.Cell(c.Text, texttab.Right)
				} else {
					tab.Cell(c.Text)
				}
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
		for _, n := range t.Notes {
			if _, err := fmt.Fprintf(w, "  note: %s\n", n); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteProducts writes, for each level of t, the runs in ascending
// runtime order with their overhead and runtime·overhead product,
// followed by the coefficient of variation of the products. A
// constant product means the overhead is a fixed cost. Levels with
// fewer than two runs are omitted.
func WriteProducts(w io.Writer, t *scaling.RuntimeTable) error {
	p := message.NewPrinter(language.English)
	for _, f := range t.Levels {
		g := f.Group
		if len(g.Points) < 2 {
			continue
		}
		if _, err := p.Fprintf(w, "%s overhead, %s (%d runs)\n", t.Metric, g.Key, len(g.Points)); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row().Cell("runtime ms").Cell("overhead %").Cell("product").Cell("benchmark")
		for _, pt := range g.Points {
			tab.Row().
				Cell(p.Sprintf("%.1f", pt.X), texttab.Right).
				Cell(p.Sprintf("%.2f", pt.Y), texttab.Right).
				Cell(p.Sprintf("%.1f", pt.X*pt.Y), texttab.Right).
				Cell(pt.Run.Record.Benchmark)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
		line := "product CV: " + notComputable
		if f.CVErr == nil {
			line = p.Sprintf("product CV: %.1f%%", f.CV)
		}
		if f.PowerLawErr == nil {
			line += p.Sprintf(", slope %.3f", f.PowerLaw.Slope)
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", line); err != nil {
			return err
		}
	}
	return nil
}
