// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) ([]*RunRecord, []*RowError, error) {
	t.Helper()
	var recs []*RunRecord
	var rejected []*RowError
	r := NewReader(strings.NewReader(input), "test.csv")
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *RunRecord:
			recs = append(recs, rec)
		case *RowError:
			rejected = append(rejected, rec)
		default:
			t.Fatalf("unexpected record %T", rec)
		}
	}
	return recs, rejected, r.Err()
}

func TestReader(t *testing.T) {
	recs, rejected, err := readAll(t, `run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms
run_01_cpu_step0_0,500,575,560,12.5
run_02_io_heavy_step3_1,1000,1100,,
`)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, "run_01_cpu_step0_0", r.RunID)
	assert.Equal(t, "01_cpu", r.Benchmark)
	assert.True(t, r.HasStep)
	assert.Equal(t, 0, r.Step)
	assert.Equal(t, 500.0, r.WallUntraced)
	assert.Equal(t, 575.0, r.WallTraced)
	assert.True(t, r.HasTracedCPU)
	assert.Equal(t, 560.0, r.TracedCPU)
	assert.True(t, r.HasPostProc)
	assert.Equal(t, 12.5, r.PostProc)
	file, line := r.Pos()
	assert.Equal(t, "test.csv", file)
	assert.Equal(t, 2, line)

	r = recs[1]
	assert.Equal(t, "02_io_heavy", r.Benchmark)
	assert.Equal(t, 3, r.Step)
	assert.False(t, r.HasTracedCPU)
	assert.False(t, r.HasPostProc)
}

func TestReaderRejects(t *testing.T) {
	check := func(row, wantMsg string) {
		t.Helper()
		recs, rejected, err := readAll(t, "run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms\n"+row+"\n")
		require.NoError(t, err)
		assert.Empty(t, recs, "row %q should be rejected", row)
		if assert.Len(t, rejected, 1) {
			assert.Contains(t, rejected[0].Msg, wantMsg)
			assert.Equal(t, 2, rejected[0].Line)
			assert.Equal(t, "test.csv", rejected[0].FileName)
		}
	}

	check("run_a_step0_0,0,100,,", "wall_ms_untraced must be > 0")
	check("run_a_step0_0,-5,100,,", "wall_ms_untraced must be > 0")
	check("run_a_step0_0,100,0,,", "wall_ms_traced must be > 0")
	check("run_a_step0_0,,100,,", "missing wall_ms_untraced")
	check("run_a_step0_0,abc,100,,", "parsing wall_ms_untraced")
	check("run_a_step0_0,NaN,100,,", "non-finite")
	check("run_a_step0_0,100,Inf,,", "non-finite")
	check("run_a_step0_0,100,110,-1,", "traced_ms must be >= 0")
	check("run_a_step0_0,100,110,,-2", "postproc_ms must be >= 0")
}

func TestReaderContinuesAfterReject(t *testing.T) {
	recs, rejected, err := readAll(t, `run_id,wall_ms_untraced,wall_ms_traced
run_a_step0_0,0,100

run_b_step1_0,100,120
`)
	require.NoError(t, err)
	assert.Len(t, rejected, 1)
	require.Len(t, recs, 1)
	assert.Equal(t, "b", recs[0].Benchmark)
	_, line := recs[0].Pos()
	assert.Equal(t, 4, line)
}

func TestReaderHeader(t *testing.T) {
	_, _, err := readAll(t, "run_id,wall_ms_untraced\nrun_a,1\n")
	assert.ErrorContains(t, err, `missing required column "wall_ms_traced"`)

	_, _, err = readAll(t, "")
	assert.ErrorContains(t, err, "missing header row")

	// Column order and case do not matter.
	recs, _, err := readAll(t, " Wall_MS_Traced , run_id, wall_ms_untraced\n120,run_x,100\n")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 100.0, recs[0].WallUntraced)
	assert.Equal(t, 120.0, recs[0].WallTraced)
}

func TestReaderBenchmarkColumn(t *testing.T) {
	recs, _, err := readAll(t, "run_id,benchmark_id,wall_ms_untraced,wall_ms_traced\nrun_a_step2_0,07_io_scaling_small,100,120\nrun_b_step0_0,,100,120\n")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "07_io_scaling_small", recs[0].Benchmark)
	assert.Equal(t, 2, recs[0].Step)
	assert.Equal(t, "b", recs[1].Benchmark)
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader("run_id\n"), "a.csv")
	assert.False(t, r.Scan())
	assert.Error(t, r.Err())

	r.Reset(strings.NewReader("run_id,wall_ms_untraced,wall_ms_traced\nrun_c,1,2\n"), "b.csv")
	require.True(t, r.Scan())
	rec, ok := r.Result().(*RunRecord)
	require.True(t, ok)
	assert.Equal(t, "c", rec.Benchmark)
	assert.False(t, r.Scan())
	assert.NoError(t, r.Err())
}

func TestParseRunID(t *testing.T) {
	check := func(runID, wantBench string, wantStep int, wantOK bool) {
		t.Helper()
		bench, step, ok := ParseRunID(runID)
		assert.Equal(t, wantBench, bench, "benchmark of %q", runID)
		assert.Equal(t, wantOK, ok, "step presence of %q", runID)
		if wantOK {
			assert.Equal(t, wantStep, step, "step of %q", runID)
		}
	}

	check("run_07_io_scaling_small_step3_1", "07_io_scaling_small", 3, true)
	check("run_02_io_heavy_step0_0", "02_io_heavy", 0, true)
	check("run_01_cpu_step12", "01_cpu", 12, true)
	check("01_cpu_step4_2", "01_cpu", 4, true)
	check("run_05_mixed", "05_mixed", 0, false)
	check("run_05_mixed_stepX_0", "05_mixed", 0, false)
	check("run_05_mixed_step-1_0", "05_mixed", 0, false)
	check("run__step2_0", "unknown", 2, true)
	check("run_", "unknown", 0, false)
	check("", "unknown", 0, false)
	check("run_a_step1_step2_0", "a", 1, true)
}
