// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names of the raw results format.
const (
	ColRunID        = "run_id"
	ColBenchmarkID  = "benchmark_id"
	ColWallUntraced = "wall_ms_untraced"
	ColWallTraced   = "wall_ms_traced"
	ColTracedCPU    = "traced_ms"
	ColPostProc     = "postproc_ms"
)

var requiredColumns = []string{ColRunID, ColWallUntraced, ColWallTraced}

// A Reader reads the raw results format.
//
// Its API is modeled on bufio.Scanner. Unlike a Scanner, each call to
// Result returns a freshly allocated record, so callers may keep it.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	csv      *csv.Reader
	fileName string
	err      error // current I/O or header error

	cols   map[string]int // header name -> column index; nil until the header is read
	result Record
}

// A RowError reports a row of a results file that was rejected. It
// corresponds to a single skipped run; the Reader continues with the
// next row.
type RowError struct {
	FileName string
	Line     int
	Row      []string // raw cells of the row
	Msg      string
}

func (e *RowError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s [%s]", e.FileName, e.Line, e.Msg, strings.Join(e.Row, ","))
}

// A Record is a single record read from a results file. It is either
// a *RunRecord or a *RowError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not
	// read from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*RunRecord)(nil)
var _ Record = (*RowError)(nil)

var noResult = &RowError{Msg: "Reader.Scan has not been called"}

// NewReader constructs a reader to parse the raw results format from
// r. fileName is used in diagnostics; it is purely informational.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. The new
// input must start with its own header row.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.csv = csv.NewReader(ior)
	r.csv.FieldsPerRecord = -1
	r.csv.TrimLeadingSpace = true
	r.csv.Comment = '#'
	r.fileName = fileName
	r.err = nil
	r.cols = nil
	r.result = nil
}

// Scan advances the reader to the next row and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF, a missing header column, or an I/O
// error, it returns false, in which case the caller should use the
// Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		row, err := r.csv.Read()
		if err == io.EOF {
			if r.cols == nil {
				r.err = errors.Errorf("%s: missing header row", r.fileName)
			}
			return false
		}
		if perr, ok := err.(*csv.ParseError); ok {
			// Malformed CSV on a single line is a rejected row, not
			// a failure of the whole input.
			if r.cols == nil {
				r.err = errors.Wrapf(perr, "%s: reading header", r.fileName)
				return false
			}
			r.result = &RowError{r.fileName, perr.StartLine, row, perr.Err.Error()}
			return true
		}
		if err != nil {
			r.err = errors.Wrap(err, r.fileName)
			return false
		}
		line, _ := r.csv.FieldPos(0)

		if r.cols == nil {
			if err := r.readHeader(row); err != nil {
				r.err = errors.Wrapf(err, "%s:%d", r.fileName, line)
				return false
			}
			continue
		}
		if isBlank(row) {
			continue
		}
		r.result = r.parseRow(row, line)
		return true
	}
}

// Result returns the record that was just read by Scan. This is
// either a *RunRecord or a *RowError describing why the row was
// skipped.
func (r *Reader) Result() Record {
	if r.result == nil {
		return noResult
	}
	return r.result
}

// Err returns the first non-EOF error that stopped the Reader: an I/O
// error or a header without a required column.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readHeader(row []string) error {
	cols := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return errors.Errorf("missing required column %q", name)
		}
	}
	r.cols = cols
	return nil
}

// cell returns the trimmed value of column name in row. Missing
// columns and empty cells are reported as absent.
func (r *Reader) cell(row []string, name string) (string, bool) {
	i, ok := r.cols[name]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func (r *Reader) parseRow(row []string, line int) Record {
	reject := func(format string, args ...interface{}) Record {
		return &RowError{r.fileName, line, row, fmt.Sprintf(format, args...)}
	}

	rec := &RunRecord{fileName: r.fileName, line: line}
	rec.RunID, _ = r.cell(row, ColRunID)
	rec.Benchmark, rec.Step, rec.HasStep = ParseRunID(rec.RunID)
	if id, ok := r.cell(row, ColBenchmarkID); ok {
		rec.Benchmark = id
	}

	var err error
	if rec.WallUntraced, err = r.required(row, ColWallUntraced); err != nil {
		return reject("%s", err)
	}
	if rec.WallTraced, err = r.required(row, ColWallTraced); err != nil {
		return reject("%s", err)
	}
	if rec.TracedCPU, rec.HasTracedCPU, err = r.optional(row, ColTracedCPU); err != nil {
		return reject("%s", err)
	}
	if rec.PostProc, rec.HasPostProc, err = r.optional(row, ColPostProc); err != nil {
		return reject("%s", err)
	}
	return rec
}

// required parses a mandatory timing, which must be strictly positive.
func (r *Reader) required(row []string, name string) (float64, error) {
	s, ok := r.cell(row, name)
	if !ok {
		return 0, errors.Errorf("missing %s", name)
	}
	v, err := parseFloat(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", name)
	}
	if v <= 0 {
		return 0, errors.Errorf("%s must be > 0, got %v", name, v)
	}
	return v, nil
}

// optional parses an optional timing, which must be >= 0 if present.
func (r *Reader) optional(row []string, name string) (float64, bool, error) {
	s, ok := r.cell(row, name)
	if !ok {
		return 0, false, nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return 0, false, errors.Wrapf(err, "parsing %s", name)
	}
	if v < 0 {
		return 0, false, errors.Errorf("%s must be >= 0, got %v", name, v)
	}
	return v, true, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if nerr, ok := err.(*strconv.NumError); ok {
			return 0, nerr.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("non-finite value %s", s)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
