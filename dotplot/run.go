// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-dotplot/figures"
	"github.com/aclements/go-dotplot/plot"
	"github.com/aclements/go-dotplot/raster"
	"github.com/aclements/go-dotplot/sheet"
	"github.com/aclements/go-dotplot/summary"
	"github.com/aclements/go-dotplot/tidy"
)

// load reads c's input and reshapes it into the long table to plot.
func load(c *config) (*table.Table, error) {
	t, err := sheet.Load(c.input, c.sel, c.rowRange, c.colRange)
	if err != nil {
		return nil, err
	}

	if c.pair.cond1 != "" {
		p := tidy.Pair{
			Subject:   c.subject,
			Group:     c.by,
			Cond1:     c.pair.cond1,
			Cond2:     c.pair.cond2,
			Condition: c.key,
			Value:     c.value,
		}
		long, err := tidy.ToPaired(t, p)
		if err != nil || !c.diff {
			return long, err
		}
		d, err := tidy.Differences(long, p)
		if err != nil {
			return nil, err
		}
		if c.by == "" {
			// All differences form one group.
			label := make([]string, d.Len())
			for i := range label {
				label[i] = tidy.Difference
			}
			d = table.NewBuilder(d).Add(c.groupCol, label).Done()
		}
		return d, nil
	}

	valueCols := []string(c.valueCols)
	if len(valueCols) == 0 {
		id := make(map[string]bool)
		for _, col := range c.ids {
			id[col] = true
		}
		for _, col := range t.Columns() {
			if !id[col] {
				valueCols = append(valueCols, col)
			}
		}
	}
	return tidy.ToLong(t, c.ids, valueCols, c.key, c.value)
}

// filter keeps only the rows of t in c's selected groups.
func filter(c *config, t *table.Table) (*table.Table, error) {
	if len(c.groups) == 0 {
		return t, nil
	}
	have, err := tidy.Strings(t, c.groupCol)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool)
	for _, g := range have {
		present[g] = true
	}
	for _, g := range c.groups {
		if !present[g] {
			log.Printf("%s: no group %q in column %q", c.input, g, c.groupCol)
		}
	}
	ft := tidy.FilterTable(t, c.groupCol, c.groups...).Table(table.RootGroupID)
	if ft == nil || ft.Len() == 0 {
		return nil, fmt.Errorf("no rows in groups %s: %w", c.groups.String(), summary.ErrEmpty)
	}
	return ft, nil
}

func (c *config) valueCol() string {
	if c.diff {
		return tidy.Difference
	}
	return c.value
}

func (c *config) options() plot.Options {
	o := plot.Options{
		Group:         c.groupCol,
		Value:         c.valueCol(),
		Subject:       c.subjectCol,
		Jitter:        c.jitter.j,
		Seed:          c.seed,
		Stat:          c.stat,
		PairedLines:   c.lines,
		FacetBy:       c.facet,
		XLabel:        c.xlabel,
		YLabel:        c.ylabel,
		Title:         c.title,
		CrossbarWidth: c.barWidth,
	}
	if o.XLabel == "" {
		o.XLabel = o.Group
	}
	if o.YLabel == "" {
		o.YLabel = o.Value
	}
	return o
}

// figure produces the figure described by c. Output goes to c.out,
// or stdout if c.out is "".
func figure(c *config, stdout io.Writer) error {
	t, err := load(c)
	if err != nil {
		return err
	}
	if t, err = filter(c, t); err != nil {
		return err
	}
	var chart *plot.Chart
	if !c.table {
		if chart, err = plot.Build(t, c.options()); err != nil {
			return err
		}
	}

	render := func(w io.Writer) error {
		switch {
		case c.table:
			table.Fprint(w, t)
			return nil
		case c.summary:
			return writeSummary(w, chart)
		}

		width := c.width
		if width == 0 {
			width = 500 * max(1, len(chart.Facets))
		}
		switch c.format {
		case "png":
			return raster.WritePNG(w, chart, width, c.height)
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "\t")
			return enc.Encode(chart)
		}
		return chart.WriteSVG(w, width, c.height)
	}
	if c.out == "" {
		return render(stdout)
	}
	return create(c.out, render)
}

// create writes the file at path with write. If write or closing the
// file fails, create removes the file.
func create(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return write(f)
}

// writeSummary prints the statistic of every group of chart.
func writeSummary(w io.Writer, chart *plot.Chart) error {
	n := make(map[[2]string]int)
	for _, p := range chart.Points {
		n[[2]string{p.Facet, p.Group}]++
	}
	tw := tabwriter.NewWriter(w, 1, 4, 2, ' ', tabwriter.AlignRight)
	if len(chart.Facets) > 0 {
		fmt.Fprint(tw, "facet\t")
	}
	fmt.Fprintf(tw, "group\tn\t%s\t\n", chart.Stat)
	for _, r := range chart.Summaries() {
		if len(chart.Facets) > 0 {
			fmt.Fprintf(tw, "%s\t", r.Facet)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6g\t\n", r.Group, n[[2]string{r.Facet, r.Group}], r.Value)
	}
	return tw.Flush()
}

// runManifest produces the figures of the manifest at path, or only
// those named in only. With dryRun, it prints the equivalent command
// of each figure instead. A failing figure does not stop the others.
func runManifest(path string, only []string, dryRun bool, stdout io.Writer) error {
	m, err := figures.Load(path)
	if err != nil {
		return err
	}
	want := make(map[string]bool)
	for _, name := range only {
		want[name] = true
	}
	var ran, failed []string
	for i := range m.Figures {
		f := &m.Figures[i]
		if len(only) > 0 && !want[f.Name] {
			continue
		}
		delete(want, f.Name)
		ran = append(ran, f.Name)
		if dryRun {
			fmt.Fprintln(stdout, f.CommandLine())
			continue
		}
		if err := runFigure(f, stdout); err != nil {
			log.Printf("%s: %v", f.Name, err)
			failed = append(failed, f.Name)
		}
	}
	if len(want) > 0 {
		var missing []string
		for name := range want {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return fmt.Errorf("%s: no figures named %s", path, strings.Join(missing, " "))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d figures failed: %s", len(failed), len(ran), strings.Join(failed, " "))
	}
	return nil
}

func runFigure(f *figures.Figure, stdout io.Writer) error {
	argv, err := f.Argv()
	if err != nil {
		return err
	}
	c, err := parseFigure(f.Name, argv)
	if err != nil {
		return err
	}
	return figure(c, stdout)
}
