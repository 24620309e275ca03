// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot builds dot plots of long-format data: one point per
// observation at its group's position, a crossbar at each group's
// median (or mean), optional lines joining each subject's pair of
// points, and optional facets.
//
// Build produces a Chart, a declarative description of the marks to
// draw. A Chart can be rendered to SVG with go-gg (Chart.WriteSVG),
// to PNG with package raster, or encoded as JSON for another
// renderer.
package plot

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-dotplot/summary"
	"github.com/aclements/go-dotplot/tidy"
)

// DefaultCrossbarWidth is the crossbar width, in units of the
// distance between adjacent groups, used if Options.CrossbarWidth is
// 0.
const DefaultCrossbarWidth = 0.5

// Jitter is the maximum random displacement of each point from its
// true position. Width is in group units and Height is in data units.
// Each point is displaced uniformly in [-Width, Width] and
// [-Height, Height].
type Jitter struct {
	Width, Height float64
}

// Options controls Build.
type Options struct {
	// Group and Value name the columns giving each observation's
	// categorical position and its measured value.
	Group, Value string

	// Subject names the column identifying the subject of each
	// observation. It is required if PairedLines is set.
	Subject string

	// Jitter, if non-nil, randomly displaces points. It never
	// affects the crossbars.
	Jitter *Jitter

	// Seed seeds the jitter. A fixed seed gives a reproducible
	// figure.
	Seed int64

	// Stat is the statistic drawn as a crossbar for each group.
	Stat summary.Statistic

	// PairedLines joins the two points of each subject with a
	// line segment. Every subject must have exactly two points in
	// each facet.
	PairedLines bool

	// FacetBy optionally names a column to split the plot into
	// side-by-side panels that share the y scale.
	FacetBy string

	XLabel, YLabel string
	Title          string

	// CrossbarWidth is the width of each crossbar in group
	// units. If 0, DefaultCrossbarWidth is used.
	CrossbarWidth float64
}

// A Point is one observation as plotted.
type Point struct {
	Facet   string `json:"facet,omitempty"`
	Group   string `json:"group"`
	Subject string `json:"subject,omitempty"`

	// X and Y are the plotted position, including jitter.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Value is the observed value, without jitter.
	Value float64 `json:"value"`
}

// A Crossbar is a horizontal summary marker from (X0, Y) to (X1, Y).
type Crossbar struct {
	Facet string  `json:"facet,omitempty"`
	Group string  `json:"group"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Y     float64 `json:"y"`
}

// A Segment joins the two points of one subject.
type Segment struct {
	Facet   string  `json:"facet,omitempty"`
	Subject string  `json:"subject"`
	X0      float64 `json:"x0"`
	Y0      float64 `json:"y0"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
}

// A Chart describes a dot plot.
//
// Group i is centered at x = i. If Facets is non-empty, each Point,
// Crossbar, and Segment belongs to the panel named by its Facet, and
// all panels share the same x and y scales.
type Chart struct {
	Title  string            `json:"title,omitempty"`
	XLabel string            `json:"xlabel,omitempty"`
	YLabel string            `json:"ylabel,omitempty"`
	Stat   summary.Statistic `json:"stat"`

	Groups []string `json:"groups"`
	Facets []string `json:"facets,omitempty"`

	Points    []Point    `json:"points"`
	Crossbars []Crossbar `json:"crossbars"`
	Segments  []Segment  `json:"segments,omitempty"`
}

// Summaries returns the statistic drawn by each crossbar.
func (c *Chart) Summaries() []summary.Result {
	res := make([]summary.Result, len(c.Crossbars))
	for i, cb := range c.Crossbars {
		res[i] = summary.Result{Facet: cb.Facet, Group: cb.Group, Value: cb.Y}
	}
	return res
}

// Build lays out a dot plot of long table t.
//
// Groups are positioned in order of first appearance, as are facets.
// It returns a *tidy.ValueError if a column is missing or, with
// PairedLines, if a subject does not have exactly two points, and an
// error wrapping summary.ErrEmpty if t has no rows.
func Build(t *table.Table, opts Options) (*Chart, error) {
	obs, err := tidy.Observations(t, opts.Subject, opts.Group, opts.Value)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("nothing to plot: %w", summary.ErrEmpty)
	}
	if opts.PairedLines && opts.Subject == "" {
		return nil, &tidy.ValueError{Msg: "paired lines need a subject column"}
	}
	facets := make([]string, len(obs))
	if opts.FacetBy != "" {
		if facets, err = tidy.Strings(t, opts.FacetBy); err != nil {
			return nil, err
		}
	}
	width := opts.CrossbarWidth
	if width == 0 {
		width = DefaultCrossbarWidth
	}

	c := &Chart{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Stat:   opts.Stat,
	}
	pos := make(map[string]int)
	seenFacet := make(map[string]bool)
	for i, o := range obs {
		if _, ok := pos[o.Group]; !ok {
			pos[o.Group] = len(c.Groups)
			c.Groups = append(c.Groups, o.Group)
		}
		if opts.FacetBy != "" && !seenFacet[facets[i]] {
			seenFacet[facets[i]] = true
			c.Facets = append(c.Facets, facets[i])
		}
	}

	// Points.
	rnd := rand.New(rand.NewSource(opts.Seed))
	c.Points = make([]Point, len(obs))
	for i, o := range obs {
		x, y := float64(pos[o.Group]), o.Value
		if j := opts.Jitter; j != nil {
			x += j.Width * (2*rnd.Float64() - 1)
			y += j.Height * (2*rnd.Float64() - 1)
		}
		c.Points[i] = Point{facets[i], o.Group, o.Subject, x, y, o.Value}
	}

	// Crossbars, one per facet and group, from unjittered values.
	results, err := summary.Table(t, opts.FacetBy, opts.Group, opts.Value, opts.Stat)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		x := float64(pos[r.Group])
		c.Crossbars = append(c.Crossbars, Crossbar{r.Facet, r.Group, x - width/2, x + width/2, r.Value})
	}

	if opts.PairedLines {
		if c.Segments, err = pairSegments(c.Points); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// pairSegments joins the two points of each subject in each facet.
func pairSegments(points []Point) ([]Segment, error) {
	type key struct{ facet, subject string }
	var order []key
	idx := make(map[key][]int)
	for i, p := range points {
		k := key{p.Facet, p.Subject}
		if _, ok := idx[k]; !ok {
			order = append(order, k)
		}
		idx[k] = append(idx[k], i)
	}
	segs := make([]Segment, 0, len(order))
	for _, k := range order {
		is := idx[k]
		if len(is) != 2 {
			return nil, &tidy.ValueError{
				Subject: k.subject,
				Msg:     fmt.Sprintf("paired lines need exactly 2 points per subject, have %d", len(is)),
			}
		}
		a, b := points[is[0]], points[is[1]]
		segs = append(segs, Segment{k.facet, k.subject, a.X, a.Y, b.X, b.Y})
	}
	return segs, nil
}
