// Copyright 2026 The Overheadstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workload classifies benchmarks by the shape of their
// workload.
package workload

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// A Level is the I/O intensity of a benchmark.
type Level int

const (
	// None marks pure-CPU workloads. It is never inferred from a
	// benchmark id; callers tag such benchmarks explicitly.
	None Level = iota
	// Little is the default for any benchmark that is not known
	// to be I/O heavy.
	Little
	// Much marks heavy-I/O benchmarks.
	Much
)

// Levels lists all levels in presentation order.
var Levels = []Level{None, Little, Much}

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Much:
		return "much"
	}
	return "little"
}

// ParseLevel parses the textual form of a Level. Anything other than
// "none" or "much" (ignoring case and surrounding space) is Little.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None
	case "much":
		return Much
	}
	return Little
}

// DefaultHeavyIO is the default set of benchmark-id substrings that
// mark a benchmark as heavy I/O.
var DefaultHeavyIO = []string{
	"02_io_heavy",         // 4 files, 100MB each
	"03_many_small_files", // 1000+ files, metadata bound
	"04_write_then_read",  // 16 files, 2MB each
}

// A Classifier assigns a Level to benchmark ids. It is immutable after
// construction.
type Classifier struct {
	heavy   mapset.Set[string]
	cpuOnly mapset.Set[string]
}

// NewClassifier returns a Classifier for the given heavy-I/O
// substrings and the exact ids of benchmarks the caller tags as
// pure-CPU.
func NewClassifier(heavyIO, cpuOnly []string) *Classifier {
	return &Classifier{
		heavy:   mapset.NewThreadUnsafeSet(heavyIO...),
		cpuOnly: mapset.NewThreadUnsafeSet(cpuOnly...),
	}
}

// Default returns a Classifier using DefaultHeavyIO and no pure-CPU
// tags.
func Default() *Classifier {
	return NewClassifier(DefaultHeavyIO, nil)
}

// Classify returns Much if benchmark contains any heavy-I/O
// substring, and Little otherwise. It never returns None.
func (c *Classifier) Classify(benchmark string) Level {
	level := Little
	c.heavy.Each(func(sub string) bool {
		if strings.Contains(benchmark, sub) {
			level = Much
			return true
		}
		return false
	})
	return level
}

// ClassifyTagged is like Classify, but returns None for benchmarks
// the caller tagged as pure-CPU.
func (c *Classifier) ClassifyTagged(benchmark string) Level {
	if c.cpuOnly.Contains(benchmark) {
		return None
	}
	return c.Classify(benchmark)
}

// HeavyIO returns the heavy-I/O substrings in sorted order.
func (c *Classifier) HeavyIO() []string {
	s := c.heavy.ToSlice()
	sort.Strings(s)
	return s
}
