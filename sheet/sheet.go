// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sheet loads rectangular regions of spreadsheet files as
// tables.
//
// A region is given by a sheet Selector and 1-based inclusive row and
// column Ranges into the raw sheet. The first row of the region is
// the header: its cells become column names and it is dropped from
// the data. Every cell of the resulting table is text; converting
// cells to numbers is left to the caller (see package tidy).
//
// XLSX files are read with github.com/tealeg/xlsx. CSV and TSV files
// are treated as workbooks with a single sheet.
package sheet

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Range is a 1-based inclusive span of rows or columns.
type Range struct {
	First, Last int
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.First, r.Last)
}

// Len returns the number of rows or columns spanned by r.
func (r Range) Len() int {
	return r.Last - r.First + 1
}

// ParseRange parses a range of the form "first:last". A single number
// "n" is the range n:n. Bounds are 1-based: a bound below 1 is a
// *RangeError.
func ParseRange(s string) (Range, error) {
	first, last := s, s
	if i := strings.Index(s, ":"); i >= 0 {
		first, last = s[:i], s[i+1:]
	}
	f, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return Range{}, fmt.Errorf("bad range %q", s)
	}
	l, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return Range{}, fmt.Errorf("bad range %q", s)
	}
	if f < 1 || l < 1 {
		return Range{}, &RangeError{What: "range", Range: Range{f, l}}
	}
	return Range{f, l}, nil
}

// Selector picks a sheet in a workbook, either by Name or, if Name is
// "", by its 1-based Index.
type Selector struct {
	Name  string
	Index int
}

// ByName returns a Selector for the sheet called name.
func ByName(name string) Selector {
	return Selector{Name: name}
}

// ByIndex returns a Selector for the i'th sheet, counting from 1.
func ByIndex(i int) Selector {
	return Selector{Index: i}
}

// ParseSelector parses a sheet selector from a command line. A
// decimal number selects a sheet by index; anything else selects by
// name. The empty string selects the first sheet.
func ParseSelector(s string) Selector {
	if s == "" {
		return ByIndex(1)
	}
	if i, err := strconv.Atoi(s); err == nil {
		return Selector{Name: s, Index: i}
	}
	return ByName(s)
}

func (s Selector) String() string {
	if s.Name != "" {
		return strconv.Quote(s.Name)
	}
	return "#" + strconv.Itoa(s.Index)
}

// RangeError reports a row or column bound outside a sheet, or a
// Selector that names no sheet.
type RangeError struct {
	Path   string
	Sheet  Selector
	What   string // "row", "column", "sheet", or "range" (a bad bound)
	Range  Range
	Extent int // number of rows or columns (or sheets) available
}

func (e *RangeError) Error() string {
	switch e.What {
	case "range":
		return fmt.Sprintf("range %s: rows and columns are numbered from 1", e.Range)
	case "sheet":
		return fmt.Sprintf("%s: sheet %s out of range (workbook has %d sheets)", e.Path, e.Sheet, e.Extent)
	}
	return fmt.Sprintf("%s: sheet %s: %s range %s out of range 1:%d", e.Path, e.Sheet, e.What, e.Range, e.Extent)
}

// A workbook is the raw contents of a spreadsheet file: a list of
// named sheets, each a ragged grid of cell text.
type workbook struct {
	names  []string
	sheets [][][]string
}

// find resolves sel against the sheets in w. A Selector with both a
// Name and an Index (from ParseSelector) prefers an exact name match.
func (w *workbook) find(sel Selector) ([][]string, bool) {
	if sel.Name != "" {
		for i, name := range w.names {
			if name == sel.Name {
				return w.sheets[i], true
			}
		}
		if sel.Index == 0 {
			return nil, false
		}
	}
	if sel.Index < 1 || sel.Index > len(w.sheets) {
		return nil, false
	}
	return w.sheets[sel.Index-1], true
}

// Load reads the rectangle rows x cols from the selected sheet of the
// spreadsheet at path. The file format is chosen by extension: .xlsx,
// .csv, or .tsv. A zero Range spans every row or column of the
// sheet.
func Load(path string, sel Selector, rows, cols Range) (*table.Table, error) {
	var wb *workbook
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		wb, err = readXLSX(path)
	case ".csv":
		wb, err = readCSV(path, ',')
	case ".tsv", ".tab":
		wb, err = readCSV(path, '\t')
	default:
		return nil, fmt.Errorf("%s: unsupported spreadsheet format", path)
	}
	if err != nil {
		return nil, err
	}
	return wb.extract(path, sel, rows, cols)
}

func (w *workbook) extract(path string, sel Selector, rows, cols Range) (*table.Table, error) {
	grid, ok := w.find(sel)
	if !ok {
		return nil, &RangeError{Path: path, Sheet: sel, What: "sheet", Extent: len(w.sheets)}
	}
	nrows, ncols := len(grid), 0
	for _, row := range grid {
		if len(row) > ncols {
			ncols = len(row)
		}
	}
	if rows == (Range{}) {
		rows = Range{1, nrows}
	}
	if cols == (Range{}) {
		cols = Range{1, ncols}
	}
	if !rows.within(nrows) {
		return nil, &RangeError{path, sel, "row", rows, nrows}
	}
	if !cols.within(ncols) {
		return nil, &RangeError{path, sel, "column", cols, ncols}
	}
	return fromGrid(grid, rows, cols), nil
}

func (r Range) within(n int) bool {
	return r.First >= 1 && r.First <= r.Last && r.Last <= n
}

// fromGrid builds a table from the rectangle rows x cols of grid,
// which must already be bounds-checked against the grid's extent.
func fromGrid(grid [][]string, rows, cols Range) *table.Table {
	cell := func(r, c int) string {
		row := grid[r-1]
		if c-1 < len(row) {
			return row[c-1]
		}
		return ""
	}

	raw := make([]string, 0, cols.Len())
	for c := cols.First; c <= cols.Last; c++ {
		raw = append(raw, cell(rows.First, c))
	}
	names := headerNames(raw)

	b := new(table.Builder)
	for j, name := range names {
		col := make([]string, 0, rows.Len()-1)
		for r := rows.First + 1; r <= rows.Last; r++ {
			col = append(col, cell(r, cols.First+j))
		}
		b.Add(name, col)
	}
	return b.Done()
}
