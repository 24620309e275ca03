// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summary computes per-group summary statistics.
//
// Statistics are always computed over the raw values of a single
// group. In particular, for paired data the summary of the change
// between conditions is the median of the per-subject differences,
// which in general is not the difference of the two conditions'
// medians. Nothing in this package derives one from the other.
package summary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-dotplot/tidy"
)

// ErrEmpty is returned when a statistic is requested for no values.
var ErrEmpty = errors.New("summary of empty sample")

// Statistic selects the summary statistic drawn as a crossbar.
type Statistic int

const (
	Median Statistic = iota
	Mean
)

func (s Statistic) String() string {
	switch s {
	case Median:
		return "median"
	case Mean:
		return "mean"
	}
	return fmt.Sprintf("Statistic(%d)", int(s))
}

// ParseStatistic parses "median" or "mean".
func ParseStatistic(s string) (Statistic, error) {
	switch s {
	case "median":
		return Median, nil
	case "mean":
		return Mean, nil
	}
	return 0, fmt.Errorf("unknown statistic %q (want median or mean)", s)
}

// Set implements flag.Value.
func (s *Statistic) Set(v string) error {
	st, err := ParseStatistic(v)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s Statistic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Statistic) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}

// Summarize returns statistic s of xs. It returns ErrEmpty if xs is
// empty. xs is not modified.
func Summarize(xs []float64, s Statistic) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	switch s {
	case Median:
		return median(xs), nil
	case Mean:
		return stats.Mean(xs), nil
	}
	return 0, fmt.Errorf("unknown statistic %v", s)
}

// median returns the order-statistic median of xs, averaging the two
// middle values if len(xs) is even.
func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Result is the summary statistic of one group. Facet is "" unless
// the summary was split by facet.
type Result struct {
	Facet string
	Group string
	Value float64
}

// ByGroup summarizes each group of obs separately. Results are in
// order of each group's first appearance in obs.
func ByGroup(obs []tidy.Observation, s Statistic) ([]Result, error) {
	var order []string
	values := make(map[string][]float64)
	for _, o := range obs {
		if _, ok := values[o.Group]; !ok {
			order = append(order, o.Group)
		}
		values[o.Group] = append(values[o.Group], o.Value)
	}
	res := make([]Result, 0, len(order))
	for _, g := range order {
		v, err := Summarize(values[g], s)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g, err)
		}
		res = append(res, Result{Group: g, Value: v})
	}
	return res, nil
}

// Table summarizes the value column of long table t for each distinct
// (facet, group) pair, in order of first appearance. facet may be ""
// to summarize across the whole table.
func Table(t *table.Table, facet, group, value string, s Statistic) ([]Result, error) {
	obs, err := tidy.Observations(t, facet, group, value)
	if err != nil {
		return nil, err
	}
	// Observations puts the facet in Subject; key groups by both.
	type key struct{ facet, group string }
	var order []key
	values := make(map[key][]float64)
	for _, o := range obs {
		k := key{o.Subject, o.Group}
		if _, ok := values[k]; !ok {
			order = append(order, k)
		}
		values[k] = append(values[k], o.Value)
	}
	res := make([]Result, 0, len(order))
	for _, k := range order {
		v, err := Summarize(values[k], s)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", k.group, err)
		}
		res = append(res, Result{k.facet, k.group, v})
	}
	return res, nil
}
