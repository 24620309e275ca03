// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

// Table returns the marks of c as a single go-gg table with columns
// "facet" (index into c.Facets, or 0), "layer" ("point", "crossbar",
// or "pair"), "group", "path", "x", and "y". Crossbars and pair
// segments contribute two rows each, tied together by a shared
// "path" value.
func (c *Chart) Table() *table.Table {
	facetIdx := make(map[string]int)
	for i, f := range c.Facets {
		facetIdx[f] = i
	}
	var (
		facet       []int
		layer       []string
		group, path []string
		xs, ys      []float64
	)
	add := func(f, l, g, p string, x, y float64) {
		facet = append(facet, facetIdx[f])
		layer = append(layer, l)
		group = append(group, g)
		path = append(path, p)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	for _, s := range c.Segments {
		p := "pair " + s.Facet + "\x00" + s.Subject
		add(s.Facet, "pair", "", p, s.X0, s.Y0)
		add(s.Facet, "pair", "", p, s.X1, s.Y1)
	}
	for _, p := range c.Points {
		add(p.Facet, "point", p.Group, "", p.X, p.Y)
	}
	for _, cb := range c.Crossbars {
		p := "bar " + cb.Facet + "\x00" + cb.Group
		add(cb.Facet, "crossbar", cb.Group, p, cb.X0, cb.Y)
		add(cb.Facet, "crossbar", cb.Group, p, cb.X1, cb.Y)
	}
	return new(table.Builder).
		Add("facet", facet).
		Add("layer", layer).
		Add("group", group).
		Add("path", path).
		Add("x", xs).
		Add("y", ys).
		Done()
}

// groupLabel formats x-axis ticks: integral positions are labeled
// with their group and everything else is left blank.
func (c *Chart) groupLabel(x float64) string {
	i := math.Round(x)
	if math.Abs(x-i) > 1e-9 || i < 0 || int(i) >= len(c.Groups) {
		return ""
	}
	return c.Groups[int(i)]
}

// Plot returns a go-gg plot of c.
func (c *Chart) Plot() *gg.Plot {
	p := gg.NewPlot(c.Table())

	xs := gg.NewLinearScaler().SetMin(-0.5).SetMax(float64(len(c.Groups)) - 0.5)
	xs.SetFormatter(c.groupLabel)
	p.SetScale("x", xs)

	if len(c.Facets) > 0 {
		p.Add(gg.FacetX{
			Col:     "facet",
			Labeler: func(v interface{}) string { return c.Facets[v.(int)] },
		})
	}

	layer := func(name string, plotter gg.Plotter, groupBy ...string) {
		defer p.Save().Restore()
		p.SetData(table.FilterEq(p.Data(), "layer", name))
		if len(groupBy) > 0 {
			p.GroupBy(groupBy...)
		}
		p.Add(plotter)
	}
	if len(c.Segments) > 0 {
		layer("pair", gg.LayerPaths{X: "x", Y: "y"}, "path")
	}
	layer("point", gg.LayerPoints{X: "x", Y: "y", Color: "group"})
	layer("crossbar", gg.LayerPaths{X: "x", Y: "y"}, "path")

	if c.XLabel != "" {
		p.Add(gg.AxisLabel("x", c.XLabel))
	}
	if c.YLabel != "" {
		p.Add(gg.AxisLabel("y", c.YLabel))
	}
	if c.Title != "" {
		p.Add(gg.Title(c.Title))
	}
	return p
}

// WriteSVG renders c as an SVG image of the given size in pixels.
func (c *Chart) WriteSVG(w io.Writer, width, height int) error {
	return c.Plot().WriteSVG(w, width, height)
}
