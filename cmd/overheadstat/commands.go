// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/polysim/overheadstat/chart"
	"github.com/polysim/overheadstat/report"
	"github.com/polysim/overheadstat/runfmt"
	"github.com/polysim/overheadstat/scaling"
)

var (
	flagExtractOut string
	flagReportOut  string
	flagFormat     string
	flagChartDir   string
	flagSVG        bool

	flagAnalyzeNormalized bool
	flagChartNormalized   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [results.csv...]",
	Short: "write the normalized per-run overhead table",
	RunE:  runExtract,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [results.csv...]",
	Short: "report overhead scaling by I/O level, data size and file count",
	RunE:  runAnalyze,
}

var chartCmd = &cobra.Command{
	Use:   "chart [results.csv...]",
	Short: "draw overhead scaling charts",
	RunE:  runChart,
}

func init() {
	extractCmd.Flags().StringVarP(&flagExtractOut, "output", "o", "runtime_overhead.csv", "write the normalized table to `file` (- for stdout)")
	analyzeCmd.Flags().StringVarP(&flagReportOut, "output", "o", "-", "write the report to `file`")
	analyzeCmd.Flags().StringVar(&flagFormat, "format", report.FormatText, "report `format`: text, html or xlsx")
	chartCmd.Flags().StringVar(&flagChartDir, "out", "charts", "write charts to `dir`")
	chartCmd.Flags().BoolVar(&flagSVG, "svg", false, "write SVG instead of PNG")
	analyzeCmd.Flags().BoolVar(&flagAnalyzeNormalized, flagNormalizedName, false, normalizedUsage)
	chartCmd.Flags().BoolVar(&flagChartNormalized, flagNormalizedName, false, normalizedUsage)
}

// create opens path for writing, with "-" meaning stdout. The returned
// close function reports write errors on the file.
func create(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	c, err := loadRuns(args, false)
	if err != nil {
		return err
	}
	w, closeOut, err := create(cmd, flagExtractOut)
	if err != nil {
		return err
	}
	n, err := runfmt.NewNormWriter(w).WriteAll(c.NormRows())
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", flagExtractOut)
	}
	log.Info().Int("rows", n).Int("dropped", len(c.Runs)-n).Str("file", flagExtractOut).Msg("wrote normalized overhead")

	a, err := scaling.Analyze(c, nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagExtractOut == "-" {
		out = cmd.ErrOrStderr()
	}
	for _, t := range a.Runtime {
		if err := report.WriteProducts(out, t); err != nil {
			return err
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	c, err := loadRuns(args, flagAnalyzeNormalized)
	if err != nil {
		return err
	}
	a, err := scaling.Analyze(c, nil)
	if err != nil {
		return err
	}
	w, closeOut, err := create(cmd, flagReportOut)
	if err != nil {
		return err
	}
	err = report.Write(w, flagFormat, a)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func runChart(cmd *cobra.Command, args []string) error {
	c, err := loadRuns(args, flagChartNormalized)
	if err != nil {
		return err
	}
	a, err := scaling.Analyze(c, nil)
	if err != nil {
		return err
	}
	files, err := chart.WriteAll(a, flagChartDir, cfg.chartOptions(flagSVG))
	for _, f := range files {
		log.Info().Str("file", f).Msg("wrote chart")
	}
	return err
}
