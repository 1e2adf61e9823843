// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/polysim/overheadstat/workload"
)

// NormHeader is the header row of the normalized overhead format.
var NormHeader = []string{"runtime_ms", "postproc_pct", "tracing_pct", "writing_level", "benchmark_id", "file_count"}

// A NormRow is one run in the normalized overhead format.
type NormRow struct {
	RuntimeMs   float64 // untraced wall time
	PostProcPct float64
	TracingPct  float64
	Level       workload.Level
	Benchmark   string

	// FileCount annotates the row with the number of files the run
	// touched, if known. It is not used by any numeric analysis.
	FileCount    int
	HasFileCount bool
}

// Positive reports whether all numeric fields of r are strictly
// positive, which log-log consumers require.
func (r NormRow) Positive() bool {
	return r.RuntimeMs > 0 && r.PostProcPct > 0 && r.TracingPct > 0
}

// A NormWriter writes the normalized overhead format.
type NormWriter struct {
	w *csv.Writer
}

// NewNormWriter returns a writer for the normalized format.
func NewNormWriter(w io.Writer) *NormWriter {
	return &NormWriter{csv.NewWriter(w)}
}

// WriteAll writes the header and the rows of rows that are strictly
// positive, in ascending runtime order. runtime_ms is written with
// one decimal and the percentages with two. It returns the number of
// rows written.
func (w *NormWriter) WriteAll(rows []NormRow) (int, error) {
	keep := make([]NormRow, 0, len(rows))
	for _, row := range rows {
		if row.Positive() {
			keep = append(keep, row)
		}
	}
	sort.SliceStable(keep, func(i, j int) bool {
		return keep[i].RuntimeMs < keep[j].RuntimeMs
	})

	if err := w.w.Write(NormHeader); err != nil {
		return 0, errors.Wrap(err, "writing header")
	}
	for _, row := range keep {
		files := ""
		if row.HasFileCount {
			files = strconv.Itoa(row.FileCount)
		}
		rec := []string{
			strconv.FormatFloat(row.RuntimeMs, 'f', 1, 64),
			strconv.FormatFloat(row.PostProcPct, 'f', 2, 64),
			strconv.FormatFloat(row.TracingPct, 'f', 2, 64),
			row.Level.String(),
			row.Benchmark,
			files,
		}
		if err := w.w.Write(rec); err != nil {
			return 0, errors.Wrap(err, "writing row")
		}
	}
	w.w.Flush()
	return len(keep), errors.Wrap(w.w.Error(), "flushing normalized rows")
}

// ReadNorm reads the normalized overhead format from r.
//
// The file_count column is optional, so files written before it
// existed still load. Rows that fail to parse or have a non-positive
// runtime_ms, postproc_pct or tracing_pct are returned as rejected.
// An unknown writing_level is read as little.
func ReadNorm(r io.Reader, fileName string) (rows []NormRow, rejected []*RowError, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.Errorf("%s: missing header row", fileName)
	} else if err != nil {
		return nil, nil, errors.Wrapf(err, "%s: reading header", fileName)
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range NormHeader[:4] {
		if _, ok := cols[name]; !ok {
			return nil, nil, errors.Errorf("%s: missing required column %q", fileName, name)
		}
	}
	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if perr, ok := err.(*csv.ParseError); ok {
			rejected = append(rejected, &RowError{fileName, perr.StartLine, row, perr.Err.Error()})
			continue
		}
		if err != nil {
			return rows, rejected, errors.Wrap(err, fileName)
		}
		line, _ := cr.FieldPos(0)
		reject := func(msg string) {
			rejected = append(rejected, &RowError{fileName, line, row, msg})
		}

		var nr NormRow
		var perr error
		num := func(name string) float64 {
			if perr != nil {
				return 0
			}
			var v float64
			v, perr = parseFloat(get(row, name))
			if perr != nil {
				perr = errors.Wrapf(perr, "parsing %s", name)
			}
			return v
		}
		nr.RuntimeMs = num("runtime_ms")
		nr.PostProcPct = num("postproc_pct")
		nr.TracingPct = num("tracing_pct")
		if perr != nil {
			reject(perr.Error())
			continue
		}
		if !nr.Positive() {
			reject("non-positive value")
			continue
		}
		nr.Level = workload.ParseLevel(get(row, "writing_level"))
		nr.Benchmark = get(row, "benchmark_id")
		if s := get(row, "file_count"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				reject("parsing file_count: " + s)
				continue
			}
			nr.FileCount, nr.HasFileCount = n, true
		}
		rows = append(rows, nr)
	}
	return rows, rejected, nil
}
