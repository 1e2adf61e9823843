// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Overheadstat analyzes how tracing and post-processing overhead
// scales with benchmark runtime, I/O volume and file count.
//
// Usage:
//
//	overheadstat extract [flags] [results.csv...]
//	overheadstat analyze [flags] [results.csv...]
//	overheadstat chart [flags] [results.csv...]
//
// Each input is a raw results file with the header
//
//	run_id,wall_ms_untraced,wall_ms_traced,traced_ms,postproc_ms
//
// where traced_ms and postproc_ms are optional. With no inputs, or
// the input "-", overheadstat reads standard input. analyze and chart
// also read the normalized file written by extract when given
// --normalized.
//
// Each run is classified by how much I/O its benchmark does. The
// benchmark ids containing any --heavy-io substring are "much" I/O,
// those listed with --cpu-only are "none", and all others are
// "little".
//
// The extract command writes the normalized per-run overhead table
// (runtime_ms, postproc_pct, tracing_pct, writing_level, benchmark_id,
// file_count) and prints, per I/O level, each run's runtime times
// overhead product and the coefficient of variation of those
// products. A fixed per-run overhead cost gives a constant product.
//
// The analyze command prints the full analysis: per I/O level the
// mean and standard deviation of each overhead, its power-law fit
// against runtime, the product CV and the 1/x reference constant;
// per file-size tier the overhead against total data size; and per
// benchmark the overhead against file count. --format selects text,
// html or xlsx output.
//
// The chart command writes log-log PNG (or SVG) charts of the same
// analyses to a directory.
//
// Benchmark descriptors, JSON files named <benchmark_id>.json in the
// --descriptors directory, supply per-step file counts and the file
// size tier. Built-in descriptors cover the standard I/O scaling
// series.
//
// Rows that cannot be parsed or have non-positive wall times are
// skipped with a warning. overheadstat exits with status 1 if an input
// cannot be read or no valid run remains.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:               "overheadstat",
	Short:             "analyze how tracing overhead scales",
	Long:              "overheadstat analyzes how tracing and post-processing overhead scales with benchmark runtime, I/O volume and file count.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initialize,
}

var (
	flagConfig      string
	flagDescriptors string
	flagDebug       bool
	flagHeavyIO     []string
	flagCPUOnly     []string
)

const (
	flagConfigName      = "config"
	flagDescriptorsName = "descriptors"
	flagDebugName       = "debug"
	flagHeavyIOName     = "heavy-io"
	flagCPUOnlyName     = "cpu-only"
	flagNormalizedName  = "normalized"
)

const normalizedUsage = "inputs are normalized overhead files written by extract"

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, flagConfigName, "", "read analysis settings from YAML `file`")
	pf.StringVar(&flagDescriptors, flagDescriptorsName, "", "read benchmark descriptors from `dir`")
	pf.BoolVar(&flagDebug, flagDebugName, false, "enable debug logging")
	pf.StringArrayVar(&flagHeavyIO, flagHeavyIOName, nil, "benchmark id `substring` marking heavy I/O (repeatable, replaces the defaults)")
	pf.StringArrayVar(&flagCPUOnly, flagCPUOnlyName, nil, "benchmark `id` to classify as CPU only (repeatable)")

	rootCmd.AddCommand(extractCmd, analyzeCmd, chartCmd)
}

func initialize(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		log.Debug().Str("flag", f.Name).Str("value", f.Value.String()).Msg("flag set")
	})
	var err error
	cfg, err = loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(flagHeavyIOName) {
		cfg.HeavyIO = flagHeavyIO
	}
	cfg.CPUOnly = append(cfg.CPUOnly, flagCPUOnly...)
	if flagDescriptors != "" {
		cfg.Descriptors = flagDescriptors
	}
	log.Debug().
		Strs("heavyIO", cfg.HeavyIO).
		Strs("cpuOnly", cfg.CPUOnly).
		Str("descriptors", cfg.Descriptors).
		Msg("configuration")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("overheadstat failed")
		os.Exit(1)
	}
}
