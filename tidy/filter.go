// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidy

import (
	"github.com/aclements/go-gg/table"
)

// Filter returns the observations whose group is one of allowed, in
// their original order. With no allowed groups the result is empty.
func Filter(obs []Observation, allowed ...string) []Observation {
	keep := set(allowed)
	out := []Observation{}
	for _, o := range obs {
		if keep[o.Group] {
			out = append(out, o)
		}
	}
	return out
}

// FilterTable returns the rows of g whose col is one of allowed,
// preserving row order and grouping. col must be a string column.
func FilterTable(g table.Grouping, col string, allowed ...string) table.Grouping {
	keep := set(allowed)
	return table.Filter(g, func(v string) bool {
		return keep[v]
	}, col)
}

func set(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
