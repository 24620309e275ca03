// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-dotplot/plot"
	"github.com/aclements/go-dotplot/sheet"
	"github.com/aclements/go-dotplot/summary"
)

type stringList []string

func (x *stringList) String() string {
	return strings.Join(*x, ",")
}

func (x *stringList) Set(s string) error {
	*x = append(*x, s)
	return nil
}

// pairFlag is a "cond1,cond2" pair of condition column names.
type pairFlag struct {
	cond1, cond2 string
}

func (p *pairFlag) String() string {
	if p.cond1 == "" {
		return ""
	}
	return p.cond1 + "," + p.cond2
}

func (p *pairFlag) Set(s string) error {
	i := strings.Index(s, ",")
	if i < 0 || s[:i] == "" || s[i+1:] == "" {
		return fmt.Errorf("want cond1,cond2")
	}
	p.cond1, p.cond2 = s[:i], s[i+1:]
	return nil
}

// jitterFlag is a "width,height" jitter. A single number sets only
// the width.
type jitterFlag struct {
	j *plot.Jitter
}

func (f *jitterFlag) String() string {
	if f.j == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g", f.j.Width, f.j.Height)
}

func (f *jitterFlag) Set(s string) error {
	ws, hs, _ := strings.Cut(s, ",")
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || w < 0 {
		return fmt.Errorf("bad jitter width %q", ws)
	}
	var h float64
	if hs != "" {
		if h, err = strconv.ParseFloat(hs, 64); err != nil || h < 0 {
			return fmt.Errorf("bad jitter height %q", hs)
		}
	}
	f.j = &plot.Jitter{Width: w, Height: h}
	return nil
}

// config is the complete description of one figure.
type config struct {
	input string

	sheet      string
	cells      string
	rows, cols string

	ids, valueCols stringList
	key, value     string
	groups         stringList

	pair    pairFlag
	diff    bool
	by      string
	subject string

	facet    string
	stat     summary.Statistic
	jitter   jitterFlag
	seed     int64
	lines    bool
	barWidth float64

	xlabel, ylabel, title string

	out           string
	format        string
	width, height int
	table         bool
	summary       bool

	// Set by check.
	sel        sheet.Selector
	rowRange   sheet.Range
	colRange   sheet.Range
	groupCol   string
	subjectCol string
}

// figureFlags registers the flags that describe a figure on fs. The
// command line and every figure of a manifest share this set.
func figureFlags(fs *flag.FlagSet) *config {
	c := new(config)
	fs.StringVar(&c.sheet, "sheet", "", "read sheet `name` or 1-based index (default first sheet)")
	fs.StringVar(&c.cells, "cells", "", "read the cell `range` A1:B2, whose first row is the header")
	fs.StringVar(&c.rows, "rows", "", "read `rows` first:last, whose first row is the header")
	fs.StringVar(&c.cols, "cols", "", "read `columns` first:last")
	fs.Var(&c.ids, "id", "keep identifier `column` when reshaping (repeatable)")
	fs.Var(&c.valueCols, "col", "reshape value `column` into rows (repeatable; default all but -id columns)")
	fs.StringVar(&c.key, "key", "", "`name` of the group column of the long table (default group, or condition with -pair)")
	fs.StringVar(&c.value, "value", "value", "`name` of the value column of the long table")
	fs.Var(&c.groups, "group", "plot only `group` (repeatable)")
	fs.Var(&c.pair, "pair", "read paired data with conditions in columns `cond1,cond2`")
	fs.BoolVar(&c.diff, "diff", false, "with -pair, plot per-subject differences cond2-cond1")
	fs.StringVar(&c.by, "by", "", "with -pair, `column` grouping subjects")
	fs.StringVar(&c.subject, "subject", "", "subject `column` (default first -id column)")
	fs.StringVar(&c.facet, "facet", "", "split the plot into panels by `column`")
	fs.Var(&c.stat, "stat", "crossbar `statistic`: median or mean")
	fs.Var(&c.jitter, "jitter", "jitter points by up to `w,h` (group units, data units)")
	fs.Int64Var(&c.seed, "seed", 1, "jitter random `seed`")
	fs.BoolVar(&c.lines, "lines", false, "join each subject's paired points")
	fs.Float64Var(&c.barWidth, "barwidth", plot.DefaultCrossbarWidth, "crossbar `width` in group units")
	fs.StringVar(&c.xlabel, "xlabel", "", "x axis `label` (default group column)")
	fs.StringVar(&c.ylabel, "ylabel", "", "y axis `label` (default value column)")
	fs.StringVar(&c.title, "title", "", "plot `title`")
	fs.StringVar(&c.out, "o", "", "write output to `file` (default: stdout)")
	fs.StringVar(&c.format, "format", "", "output `format`: svg, png, or json (default from -o, else svg)")
	fs.IntVar(&c.width, "width", 0, "image `width` in pixels (default 500 per panel)")
	fs.IntVar(&c.height, "height", 350, "image `height` in pixels")
	fs.BoolVar(&c.table, "table", false, "output the long table instead of a plot")
	fs.BoolVar(&c.summary, "summary", false, "output group statistics instead of a plot")
	return c
}

// setFigureFlags returns the names of the figure flags that were set
// on fs, in lexical order.
func setFigureFlags(fs *flag.FlagSet) []string {
	figure := flag.NewFlagSet("", flag.ContinueOnError)
	figureFlags(figure)
	var set []string
	fs.Visit(func(f *flag.Flag) {
		if figure.Lookup(f.Name) != nil {
			set = append(set, f.Name)
		}
	})
	return set
}

// check validates c after its flags are parsed and fills in defaults.
func (c *config) check() error {
	if c.input == "" {
		return fmt.Errorf("no input file")
	}
	c.sel = sheet.ParseSelector(c.sheet)

	var err error
	if c.cells != "" {
		if c.rows != "" || c.cols != "" {
			return fmt.Errorf("-cells and -rows/-cols are exclusive")
		}
		if c.rowRange, c.colRange, err = sheet.ParseCells(c.cells); err != nil {
			return err
		}
	} else {
		if c.rows != "" {
			if c.rowRange, err = sheet.ParseRange(c.rows); err != nil {
				return fmt.Errorf("-rows: %w", err)
			}
		}
		if c.cols != "" {
			if c.colRange, err = sheet.ParseRange(c.cols); err != nil {
				return fmt.Errorf("-cols: %w", err)
			}
		}
	}

	paired := c.pair.cond1 != ""
	if paired {
		if len(c.valueCols) > 0 {
			return fmt.Errorf("-col and -pair are exclusive")
		}
		if c.subject == "" {
			return fmt.Errorf("-pair requires -subject")
		}
	} else {
		if c.diff {
			return fmt.Errorf("-diff requires -pair")
		}
		if c.by != "" {
			return fmt.Errorf("-by requires -pair")
		}
	}
	if c.key == "" {
		c.key = "group"
		if paired {
			c.key = "condition"
		}
	}

	c.subjectCol = c.subject
	if c.subjectCol == "" && len(c.ids) > 0 {
		c.subjectCol = c.ids[0]
	}
	c.groupCol = c.key
	if c.diff && c.by != "" {
		c.groupCol = c.by
	}
	if c.lines {
		if c.diff {
			return fmt.Errorf("-lines and -diff are exclusive")
		}
		if c.subjectCol == "" {
			return fmt.Errorf("-lines requires -subject or -id")
		}
	}
	if c.barWidth <= 0 {
		return fmt.Errorf("-barwidth must be positive")
	}

	if c.format == "" {
		c.format = "svg"
		switch strings.ToLower(filepath.Ext(c.out)) {
		case ".png":
			c.format = "png"
		case ".json":
			c.format = "json"
		}
	}
	switch c.format {
	case "svg", "png", "json":
	default:
		return fmt.Errorf("unknown format %q", c.format)
	}
	if c.width < 0 || c.height <= 0 {
		return fmt.Errorf("bad image size %dx%d", c.width, c.height)
	}
	return nil
}

// parseFigure parses the arguments of one figure: flags followed by
// exactly one input file.
func parseFigure(name string, args []string) (*config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := figureFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("want one input file, got %d arguments", fs.NArg())
	}
	c.input = fs.Arg(0)
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}
