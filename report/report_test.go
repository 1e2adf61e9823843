// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polysim/overheadstat/benchconf"
	"github.com/polysim/overheadstat/scaling"
)

const results = `run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms
run_01_cpu_step0_0,100,150,,10
run_01_cpu_step1_0,200,250,,10
run_01_cpu_step2_0,400,450,,10
run_02_io_heavy_step0_0,1500,1530,,20
run_07_io_scaling_small_step0_0,1000,1100,1050,4
run_07_io_scaling_small_step1_0,2000,2200,2100,4
`

func analysis(t *testing.T) *scaling.Analysis {
	t.Helper()
	c := &scaling.Collection{Descriptors: benchconf.Defaults()}
	require.NoError(t, c.AddFile("results.csv", strings.NewReader(results)))
	a, err := scaling.Analyze(c, nil)
	require.NoError(t, err)
	return a
}

func TestTables(t *testing.T) {
	tables := Tables(analysis(t))
	var names []string
	for _, tab := range tables {
		names = append(names, tab.Name)
		for _, row := range tab.Rows {
			assert.Len(t, row, len(tab.Header), "table %s", tab.Name)
		}
	}
	assert.Equal(t, []string{
		"Input",
		"postproc overhead vs runtime",
		"postproc overhead by level",
		"tracing overhead vs runtime",
		"tracing overhead by level",
		"traced-cpu overhead vs total data size",
		"Data size fits per file size",
		"tracing overhead vs file count",
	}, names)

	tracing := tables[3]
	require.Len(t, tracing.Rows, 3)
	assert.Equal(t, "little", tracing.Rows[0][0].Text)
	assert.Equal(t, "much", tracing.Rows[1][0].Text)
	assert.Equal(t, "all", tracing.Rows[2][0].Text)
	// The single much run has no fit or CV, and the notes say why.
	assert.Equal(t, notComputable, tracing.Rows[1][4].Text)
	assert.Equal(t, notComputable, tracing.Rows[1][6].Text)
	assert.Len(t, tracing.Notes, 2)
	assert.Contains(t, tracing.Notes[0], "insufficient samples")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, analysis(t)))
	out := buf.String()
	assert.Contains(t, out, "tracing overhead vs runtime\n")
	assert.Contains(t, out, "note: much: power-law fit not computable: insufficient samples")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatHTML, analysis(t)))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h2>tracing overhead vs runtime</h2>")
	assert.Contains(t, out, `<td class="num">`)
	assert.Contains(t, out, "07_io_scaling_small")
}

func TestWriteXlsx(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXlsx, analysis(t)))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(XlsxSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Input", v)
	v, err = f.GetCellValue(XlsxSheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "6", v)
}

func TestWriteXlsxCellError(t *testing.T) {
	// More columns than a worksheet holds.
	header := make([]string, excelize.MaxColumns+1)
	for i := range header {
		header[i] = "c"
	}
	err := WriteXlsx(&bytes.Buffer{}, []*Table{{Name: "wide", Header: header}})
	assert.ErrorContains(t, err, "cell 16385,2")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "pdf", analysis(t))
	assert.ErrorContains(t, err, `unknown report format "pdf"`)
}

func TestWriteProducts(t *testing.T) {
	a := analysis(t)
	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, a.Runtime[1]))
	out := buf.String()
	assert.Contains(t, out, "tracing overhead, little (5 runs)")
	assert.NotContains(t, out, "tracing overhead, much")
	assert.Contains(t, out, "5,000.0")
	assert.NotContains(t, out, "product CV: n/a")
}
