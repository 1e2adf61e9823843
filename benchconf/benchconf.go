// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchconf loads benchmark descriptors, which tell how many
// files each step of a benchmark writes and how large they are.
//
// A descriptor is a JSON file named after its benchmark id, for
// example 07_io_scaling_small.json:
//
//	{
//		"files": 50,
//		"file_size_mb": 1,
//		"steps": [{}, {"files": 100}, {"files": 150}]
//	}
//
// Descriptors only annotate runs; no overhead computation depends on
// them.
package benchconf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A Step overrides descriptor fields for one step of a benchmark.
type Step struct {
	Files *int `json:"files,omitempty"`
}

// A Descriptor describes one benchmark.
type Descriptor struct {
	// Files is the number of files written when a step does not
	// override it.
	Files int `json:"files"`

	// FileSizeMB is the size of each file. Zero means the benchmark
	// does not belong to a file-size tier.
	FileSizeMB float64 `json:"file_size_mb,omitempty"`

	// Steps are the ordered per-step overrides.
	Steps []Step `json:"steps,omitempty"`
}

// FileCount returns the number of files of the given step. Steps
// without an override, out-of-range steps, and runs without a step use
// the descriptor's Files. ok is false if the resulting count is not
// positive.
func (d *Descriptor) FileCount(step int, hasStep bool) (n int, ok bool) {
	n = d.Files
	if hasStep && step >= 0 && step < len(d.Steps) && d.Steps[step].Files != nil {
		n = *d.Steps[step].Files
	}
	return n, n > 0
}

// A Set maps benchmark ids to their descriptors.
type Set map[string]*Descriptor

// Lookup returns the descriptor of benchmark.
func (s Set) Lookup(benchmark string) (*Descriptor, bool) {
	d, ok := s[benchmark]
	return d, ok
}

// Merge returns a new Set with the descriptors of s overridden by
// those of o.
func (s Set) Merge(o Set) Set {
	out := make(Set, len(s)+len(o))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Names returns the benchmark ids in s in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a single descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.Files < 0 || d.FileSizeMB < 0 {
		return nil, errors.New("negative files or file_size_mb")
	}
	return &d, nil
}

// LoadDir reads every *.json file in dir as a descriptor keyed by the
// file's base name without extension.
//
// Files that cannot be read or decoded are skipped and reported in
// warnings. err is only set if dir itself cannot be listed.
func LoadDir(dir string) (set Set, warnings []error, err error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listing descriptors in %s", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, errors.Wrap(err, "descriptor directory")
	}
	sort.Strings(paths)
	set = make(Set, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			warnings = append(warnings, errors.Wrap(err, "reading descriptor"))
			continue
		}
		d, err := Parse(data)
		if err != nil {
			warnings = append(warnings, errors.Wrapf(err, "decoding descriptor %s", p))
			continue
		}
		set[strings.TrimSuffix(filepath.Base(p), ".json")] = d
	}
	return set, warnings, nil
}

// Defaults returns descriptors for the I/O scaling series of the
// standard benchmark suite: the same file-count ladder at 1MB, 10MB
// and 50MB per file.
func Defaults() Set {
	ladder := func(sizeMB float64, counts ...int) *Descriptor {
		d := &Descriptor{Files: counts[0], FileSizeMB: sizeMB}
		for i := range counts {
			n := counts[i]
			d.Steps = append(d.Steps, Step{Files: &n})
		}
		return d
	}
	return Set{
		"07_io_scaling_small":  ladder(1, 50, 100, 150, 200, 300, 500, 750, 1000, 1500, 2000),
		"08_io_scaling_medium": ladder(10, 5, 10, 15, 20, 30, 50, 75, 100, 150, 200),
		"09_io_scaling_large":  ladder(50, 1, 2, 3, 4, 6, 10, 15, 20, 30, 40),
	}
}
