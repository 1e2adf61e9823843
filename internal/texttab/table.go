// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned text tables.
package texttab

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so calls can be chained.
type Table struct {
	rows [][]cell
	cols int

	// Sep separates columns. It defaults to two spaces.
	Sep string
}

type cell struct {
	value string
	right bool
}

// A CellOption modifies a cell.
type CellOption func(c *cell)

// Right aligns a cell to the right edge of its column.
var Right CellOption = func(c *cell) { c.right = true }

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row, starting a row if there is
// none.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, c)
	if len(*r) > t.cols {
		t.cols = len(*r)
	}
	return t
}

// Rows returns the number of rows in t.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Format lays out t and writes it to w. Trailing empty cells are not
// padded.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = "  "
	}
	widths := make([]int, t.cols)
	for _, r := range t.rows {
		for i, c := range r {
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for _, r := range t.rows {
		b.Reset()
		last := len(r) - 1
		for last >= 0 && r[last].value == "" {
			last--
		}
		for i := 0; i <= last; i++ {
			c := r[i]
			if i > 0 {
				b.WriteString(sep)
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c.value))
			switch {
			case c.right:
				b.WriteString(pad)
				b.WriteString(c.value)
			case i == last:
				b.WriteString(c.value)
			default:
				b.WriteString(c.value)
				b.WriteString(pad)
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
