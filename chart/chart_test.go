// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polysim/overheadstat/benchconf"
	"github.com/polysim/overheadstat/scaling"
	"github.com/polysim/overheadstat/workload"
)

const results = `run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms
run_06_pure_cpu_step0_0,50,90,,5
run_01_cpu_step0_0,100,150,,10
run_01_cpu_step1_0,200,250,,10
run_02_io_heavy_step0_0,100,200,,20
run_02_io_heavy_step1_0,1000,1100,,20
run_07_io_scaling_small_step0_0,1000,1100,1050,4
run_07_io_scaling_small_step1_0,1000,1200,1100,4
run_09_io_scaling_large_step2_0,1000,1250,1200,4
`

func analysis(t *testing.T) *scaling.Analysis {
	t.Helper()
	c := &scaling.Collection{
		Classifier:  workload.NewClassifier(workload.DefaultHeavyIO, []string{"06_pure_cpu"}),
		Descriptors: benchconf.Defaults(),
	}
	require.NoError(t, c.AddFile("results.csv", strings.NewReader(results)))
	a, err := scaling.Analyze(c, nil)
	require.NoError(t, err)
	return a
}

func TestWriteAll(t *testing.T) {
	a := analysis(t)
	for _, svg := range []bool{false, true} {
		dir := filepath.Join(t.TempDir(), "charts")
		opts := DefaultOptions
		opts.SVG = svg
		opts.DPI = 30
		files, err := WriteAll(a, dir, opts)
		require.NoError(t, err)

		ext := ".png"
		if svg {
			ext = ".svg"
		}
		var names []string
		for _, f := range files {
			assert.Equal(t, ext, filepath.Ext(f))
			st, err := os.Stat(f)
			require.NoError(t, err)
			assert.NotZero(t, st.Size())
			names = append(names, strings.TrimSuffix(filepath.Base(f), ext))
		}
		assert.Equal(t, []string{PostProcVsRuntime, TracingVsRuntime, IOCategory, DataSizeOverhead, TracingFileCount}, names)
	}
}

func TestChartsSkipEmpty(t *testing.T) {
	// One run with a faster traced than untraced time has nothing
	// to draw on log axes.
	c := &scaling.Collection{}
	require.NoError(t, c.AddFile("r.csv", strings.NewReader("run_id,wall_ms_untraced,wall_ms_traced\nrun_a,100,90\n")))
	a, err := scaling.Analyze(c, nil)
	require.NoError(t, err)

	p, err := Runtime(a.Runtime[1], "t")
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = ByLevel(a.Runtime[1], "t")
	require.NoError(t, err)
	assert.Nil(t, p)

	files, err := WriteAll(a, t.TempDir(), DefaultOptions)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSinglePoint(t *testing.T) {
	c := &scaling.Collection{}
	require.NoError(t, c.AddFile("r.csv", strings.NewReader("run_id,wall_ms_untraced,wall_ms_traced,postproc_ms\nrun_a,100,110,3\n")))
	a, err := scaling.Analyze(c, nil)
	require.NoError(t, err)
	p, err := Runtime(a.Runtime[0], "t")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Less(t, p.X.Min, p.X.Max)
	_, err = Save(p, t.TempDir(), "single", DefaultOptions)
	assert.NoError(t, err)
}

func TestDecades(t *testing.T) {
	labels := func(min, max float64) []string {
		var out []string
		for _, tk := range (decades{}).Ticks(min, max) {
			if tk.Label != "" {
				out = append(out, tk.Label)
			}
		}
		return out
	}

	assert.Equal(t, []string{"10", "100", "1000"}, labels(5, 2000))
	assert.Equal(t, []string{"20", "50"}, labels(15, 60))
	assert.Len(t, (decades{}).Ticks(1, 10), 10)
	assert.Nil(t, (decades{}).Ticks(0, 10))
}
