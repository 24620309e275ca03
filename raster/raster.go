// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster renders dot plot charts as PNG images.
//
// It is a small preview renderer, not a replacement for the SVG
// output of go-gg: it draws one panel per facet with shared axes,
// the points, crossbars, and pair lines of a chart, and plain
// 7x13 text labels.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/aclements/go-dotplot/plot"
)

// Shapes are drawn at supersample times the output resolution and
// scaled down, which is cheaper than antialiasing every edge.
const supersample = 2

var (
	panelColor = color.RGBA{0xeb, 0xeb, 0xeb, 0xff}
	gridColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pairColor  = color.RGBA{0x99, 0x99, 0x99, 0xff}
	barColor   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	textColor  = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// palette colors points by group.
var palette = []color.RGBA{
	{0xf8, 0x76, 0x6d, 0xff},
	{0x00, 0xba, 0x38, 0xff},
	{0x61, 0x9c, 0xff, 0xff},
	{0xc7, 0x7c, 0xff, 0xff},
	{0xcd, 0x96, 0x00, 0xff},
	{0x00, 0xbf, 0xc4, 0xff},
	{0xff, 0x61, 0xc3, 0xff},
	{0x7c, 0xae, 0x00, 0xff},
}

var face = basicfont.Face7x13

// WritePNG renders c as a width x height PNG image.
func WritePNG(w io.Writer, c *plot.Chart, width, height int) error {
	return png.Encode(w, Render(c, width, height))
}

// Render draws c into a new width x height image.
func Render(c *plot.Chart, width, height int) *image.RGBA {
	l := newLayout(c, width, height)

	hi := image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample))
	draw.Draw(hi, hi.Bounds(), image.White, image.Point{}, draw.Src)
	p := &painter{dst: hi, z: vector.NewRasterizer(hi.Bounds().Dx(), hi.Bounds().Dy())}

	for i := 0; i < l.panels; i++ {
		x0, x1 := float64(l.panelLeft(i)), float64(l.panelLeft(i)+l.panelW)
		p.rect(x0, float64(l.top), x1, float64(l.bottom), panelColor)
		for _, t := range l.ticks {
			y := l.py(t)
			p.line(x0, y, x1, y, 1, gridColor)
		}
	}
	for _, s := range c.Segments {
		f := l.facet[s.Facet]
		p.line(l.px(f, s.X0), l.py(s.Y0), l.px(f, s.X1), l.py(s.Y1), 1, pairColor)
	}
	for _, pt := range c.Points {
		p.circle(l.px(l.facet[pt.Facet], pt.X), l.py(pt.Y), 3, l.groupColor(pt.Group))
	}
	for _, cb := range c.Crossbars {
		f := l.facet[cb.Facet]
		y := l.py(cb.Y)
		p.line(l.px(f, cb.X0), y, l.px(f, cb.X1), y, 2, barColor)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Src, nil)
	l.labels(out, c)
	return out
}

type layout struct {
	width, height            int
	left, top, right, bottom int // plot area edges, in output pixels
	panels, panelW, gap      int
	groups                   int

	y     scale.Linear
	ticks []float64

	facet map[string]int
	color map[string]color.RGBA
}

func newLayout(c *plot.Chart, width, height int) *layout {
	l := &layout{width: width, height: height, gap: 8}

	l.facet = make(map[string]int)
	for i, f := range c.Facets {
		l.facet[f] = i
	}
	l.panels = len(c.Facets)
	if l.panels == 0 {
		l.panels = 1
	}
	l.groups = len(c.Groups)
	if l.groups == 0 {
		l.groups = 1
	}
	l.color = make(map[string]color.RGBA)
	for i, g := range c.Groups {
		l.color[g] = palette[i%len(palette)]
	}

	// Shared y scale over every mark, padded by 5% on each side.
	ys := make([]float64, 0, len(c.Points)+len(c.Crossbars))
	for _, pt := range c.Points {
		ys = append(ys, pt.Y)
	}
	for _, cb := range c.Crossbars {
		ys = append(ys, cb.Y)
	}
	lo, hi := -1.0, 1.0
	if len(ys) > 0 {
		lo, hi = stats.Bounds(ys)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	l.y = scale.Linear{Min: lo - pad, Max: hi + pad}
	l.ticks, _ = l.y.Ticks(scale.TickOptions{Max: 6})

	// Margins leave room for the labels drawn by labels.
	lineH := face.Metrics().Height.Ceil()
	tickW := 0
	for _, t := range l.ticks {
		if w := textWidth(tickLabel(t)); w > tickW {
			tickW = w
		}
	}
	l.left = 8 + tickW + 6
	l.right = width - 8
	l.top = 8
	if c.Title != "" {
		l.top += lineH + 4
	}
	if len(c.Facets) > 0 || c.YLabel != "" {
		l.top += lineH + 4
	}
	l.bottom = height - 8 - lineH - 4
	if c.XLabel != "" {
		l.bottom -= lineH + 4
	}

	l.panelW = (l.right - l.left - l.gap*(l.panels-1)) / l.panels
	return l
}

func (l *layout) panelLeft(i int) int {
	return l.left + i*(l.panelW+l.gap)
}

// px maps group position x in panel f to an output x coordinate.
// Group i is centered in the i'th of l.groups equal slots.
func (l *layout) px(f int, x float64) float64 {
	return float64(l.panelLeft(f)) + (x+0.5)/float64(l.groups)*float64(l.panelW)
}

// py maps data value y to an output y coordinate.
func (l *layout) py(y float64) float64 {
	return float64(l.bottom) - l.y.Map(y)*float64(l.bottom-l.top)
}

func (l *layout) groupColor(g string) color.RGBA {
	if c, ok := l.color[g]; ok {
		return c
	}
	return barColor
}

func tickLabel(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// labels draws the text of c over img at output resolution.
func (l *layout) labels(img *image.RGBA, c *plot.Chart) {
	text := func(x, y int, s string) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(textColor),
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(s)
	}
	centered := func(x float64, y int, s string) {
		text(int(math.Round(x))-textWidth(s)/2, y, s)
	}
	ascent := face.Metrics().Ascent.Ceil()
	lineH := face.Metrics().Height.Ceil()

	for _, t := range l.ticks {
		s := tickLabel(t)
		text(l.left-6-textWidth(s), int(math.Round(l.py(t)))+ascent/2, s)
	}
	for f := 0; f < l.panels; f++ {
		for i, g := range c.Groups {
			centered(l.px(f, float64(i)), l.bottom+4+ascent, g)
		}
	}
	for i, f := range c.Facets {
		centered(float64(l.panelLeft(i))+float64(l.panelW)/2, l.top-4, f)
	}
	if c.Title != "" {
		text(8, 8+ascent, c.Title)
	}
	if c.YLabel != "" {
		text(8, l.top-4, c.YLabel)
	}
	if c.XLabel != "" {
		centered(float64(l.left+l.right)/2, l.bottom+4+lineH+4+ascent, c.XLabel)
	}
}

// painter fills shapes given in output coordinates into a
// supersampled image.
type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (p *painter) fill(col color.Color, pts ...float64) {
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
	const s = supersample
	p.z.MoveTo(float32(pts[0]*s), float32(pts[1]*s))
	for i := 2; i+1 < len(pts); i += 2 {
		p.z.LineTo(float32(pts[i]*s), float32(pts[i+1]*s))
	}
	p.z.ClosePath()
	p.z.Draw(p.dst, b, image.NewUniform(col), image.Point{})
}

func (p *painter) rect(x0, y0, x1, y1 float64, col color.Color) {
	p.fill(col, x0, y0, x1, y0, x1, y1, x0, y1)
}

// line strokes a segment of the given width as a quadrilateral.
func (p *painter) line(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	nx, ny := -dy/n*width/2, dx/n*width/2
	p.fill(col, x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
}

func (p *painter) circle(x, y, r float64, col color.Color) {
	const n = 16
	pts := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		pts = append(pts, x+r*math.Cos(a), y+r*math.Sin(a))
	}
	p.fill(col, pts...)
}
