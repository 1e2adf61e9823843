// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polysim/overheadstat/workload"
)

func TestNormWriter(t *testing.T) {
	rows := []NormRow{
		{RuntimeMs: 2000, PostProcPct: 1.234, TracingPct: 5, Level: workload.Much, Benchmark: "02_io_heavy"},
		{RuntimeMs: 500, PostProcPct: 2.5, TracingPct: 15, Level: workload.Little, Benchmark: "01_cpu", FileCount: 50, HasFileCount: true},
		{RuntimeMs: 800, PostProcPct: 0, TracingPct: 10, Level: workload.Little, Benchmark: "no_postproc"},
		{RuntimeMs: 900, PostProcPct: 1, TracingPct: -3, Level: workload.Little, Benchmark: "faster_traced"},
	}
	var buf strings.Builder
	n, err := NewNormWriter(&buf).WriteAll(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, `runtime_ms,postproc_pct,tracing_pct,writing_level,benchmark_id,file_count
500.0,2.50,15.00,little,01_cpu,50
2000.0,1.23,5.00,much,02_io_heavy,
`, buf.String())
}

func TestNormWriterEmpty(t *testing.T) {
	var buf strings.Builder
	n, err := NewNormWriter(&buf).WriteAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, strings.Join(NormHeader, ",")+"\n", buf.String())
}

func TestReadNorm(t *testing.T) {
	input := `runtime_ms,postproc_pct,tracing_pct,writing_level,benchmark_id,file_count
500.0,2.50,15.00,little,01_cpu,50
2000.0,1.23,5.00,much,02_io_heavy,
100.0,1.00,3.00,bogus,x,
100.0,0.00,3.00,little,zero,
abc,1,1,little,bad,
100.0,1.00,3.00,none,files,-4
`
	rows, rejected, err := ReadNorm(strings.NewReader(input), "norm.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rejected, 3)

	assert.Equal(t, NormRow{RuntimeMs: 500, PostProcPct: 2.5, TracingPct: 15, Level: workload.Little, Benchmark: "01_cpu", FileCount: 50, HasFileCount: true}, rows[0])
	assert.Equal(t, workload.Much, rows[1].Level)
	assert.False(t, rows[1].HasFileCount)
	assert.Equal(t, workload.Little, rows[2].Level, "unknown level reads as little")

	for _, r := range rejected {
		assert.Equal(t, "norm.csv", r.FileName)
	}
	assert.Equal(t, 5, rejected[0].Line)
}

func TestReadNormWithoutFileCount(t *testing.T) {
	rows, rejected, err := ReadNorm(strings.NewReader("runtime_ms,postproc_pct,tracing_pct,writing_level,benchmark_id\n10,1,2,much,b\n"), "old.csv")
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, rows, 1)
	assert.Equal(t, workload.Much, rows[0].Level)

	_, _, err = ReadNorm(strings.NewReader("runtime_ms,postproc_pct\n1,2\n"), "short.csv")
	assert.ErrorContains(t, err, "tracing_pct")
}

func TestNormRoundTrip(t *testing.T) {
	rows := []NormRow{
		{RuntimeMs: 120.5, PostProcPct: 3.25, TracingPct: 40, Level: workload.None, Benchmark: "06_pure_cpu"},
		{RuntimeMs: 800, PostProcPct: 0.5, TracingPct: 7.75, Level: workload.Much, Benchmark: "03_many_small_files", FileCount: 1000, HasFileCount: true},
	}
	var buf strings.Builder
	_, err := NewNormWriter(&buf).WriteAll(rows)
	require.NoError(t, err)
	got, rejected, err := ReadNorm(strings.NewReader(buf.String()), "rt.csv")
	require.NoError(t, err)
	assert.Empty(t, rejected)
	assert.Equal(t, rows, got)
}
