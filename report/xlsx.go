// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XlsxSheetName is the worksheet WriteXlsx writes to.
const XlsxSheetName = "Overhead"

// WriteXlsx writes tables one after another to a single worksheet of
// an xlsx workbook. Numeric cells keep their raw values.
func WriteXlsx(w io.Writer, tables []*Table) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := XlsxSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return errors.Wrap(err, "setting column width")
	}
	if err := f.SetColWidth(sheet, "B", "H", 16); err != nil {
		return errors.Wrap(err, "setting column width")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	italic, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: "666666"}})
	if err != nil {
		return err
	}

	// set records the first error and ignores later calls.
	row := 1
	var setErr error
	set := func(col int, v interface{}, style int) {
		if setErr != nil {
			return
		}
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			setErr = errors.Wrapf(err, "cell %d,%d", col, row)
			return
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			setErr = errors.Wrapf(err, "setting %s", cell)
			return
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				setErr = errors.Wrapf(err, "styling %s", cell)
			}
		}
	}
	for _, t := range tables {
		set(1, t.Name, bold)
		row++
		for i, h := range t.Header {
			set(i+1, h, bold)
		}
		row++
		for _, r := range t.Rows {
			for i, c := range r {
				if c.Numeric() {
					set(i+1, c.Value, 0)
				} else {
					set(i+1, c.Text, 0)
				}
			}
			row++
		}
		for _, n := range t.Notes {
			set(1, n, italic)
			row++
		}
		row++
	}
	if setErr != nil {
		return setErr
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing xlsx report")
	}
	return nil
}
