// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v2"

	"github.com/polysim/overheadstat/benchconf"
	"github.com/polysim/overheadstat/chart"
	"github.com/polysim/overheadstat/runfmt"
	"github.com/polysim/overheadstat/scaling"
	"github.com/polysim/overheadstat/workload"
)

// A Config holds analysis settings read from the --config file.
type Config struct {
	HeavyIO     []string    `yaml:"heavy_io"`
	CPUOnly     []string    `yaml:"cpu_only"`
	Descriptors string      `yaml:"descriptors"`
	Chart       ChartConfig `yaml:"chart"`
}

// A ChartConfig sets the size of rendered charts.
type ChartConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
	DPI      int     `yaml:"dpi"`
}

var cfg *Config

func defaultConfig() *Config {
	return &Config{
		HeavyIO: append([]string(nil), workload.DefaultHeavyIO...),
		Chart: ChartConfig{
			WidthIn:  float64(chart.DefaultOptions.Width / vg.Inch),
			HeightIn: float64(chart.DefaultOptions.Height / vg.Inch),
			DPI:      chart.DefaultOptions.DPI,
		},
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty
// path or a missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
		return c, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 || c.Chart.DPI <= 0 {
		return nil, errors.Errorf("config %s: chart size and dpi must be positive", path)
	}
	return c, nil
}

func (c *Config) chartOptions(svg bool) chart.Options {
	return chart.Options{
		Width:  vg.Length(c.Chart.WidthIn) * vg.Inch,
		Height: vg.Length(c.Chart.HeightIn) * vg.Inch,
		DPI:    c.Chart.DPI,
		SVG:    svg,
	}
}

// descriptors returns the built-in descriptors overridden by those in
// the configured directory.
func (c *Config) descriptors() (benchconf.Set, error) {
	set := benchconf.Defaults()
	if c.Descriptors == "" {
		return set, nil
	}
	dir, warnings, err := benchconf.LoadDir(c.Descriptors)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn().Err(w).Msg("skipping descriptor")
	}
	log.Debug().Strs("benchmarks", dir.Names()).Msg("loaded descriptors")
	return set.Merge(dir), nil
}

// loadRuns reads every input into a new Collection. Rejected rows are
// logged and skipped. It returns scaling.ErrEmptyInput if no valid
// run was read.
func loadRuns(paths []string, normalized bool) (*scaling.Collection, error) {
	set, err := cfg.descriptors()
	if err != nil {
		return nil, err
	}
	c := &scaling.Collection{
		Classifier:  workload.NewClassifier(cfg.HeavyIO, cfg.CPUOnly),
		Descriptors: set,
	}

	if normalized {
		if err := addNormalized(c, paths); err != nil {
			return nil, err
		}
	} else if err := c.AddFiles(&runfmt.Files{Paths: paths, AllowStdin: true}); err != nil {
		return nil, err
	}

	for _, e := range c.Rejected {
		log.Warn().Str("file", e.FileName).Int("line", e.Line).Msg(e.Msg)
	}
	log.Info().Int("runs", len(c.Runs)).Int("rejected", len(c.Rejected)).Msg("read results")
	if len(c.Runs) == 0 {
		return nil, scaling.ErrEmptyInput
	}
	return c, nil
}

func addNormalized(c *scaling.Collection, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, path := range paths {
		f, name := os.Stdin, "<stdin>"
		if path != "-" {
			var err error
			if f, err = os.Open(path); err != nil {
				return err
			}
			name = path
		}
		rows, rejected, err := runfmt.ReadNorm(f, name)
		if f != os.Stdin {
			f.Close()
		}
		if err != nil {
			return err
		}
		c.AddNorm(rows)
		c.Rejected = append(c.Rejected, rejected...)
	}
	return nil
}
