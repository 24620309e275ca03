// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/tealeg/xlsx"
)

// testBook mimics a typical figure sheet: a title row, a blank row,
// then a header and three subjects.
var testBook = &workbook{
	names: []string{"Fig 1", "Fig 2"},
	sheets: [][][]string{
		{
			{"Figure 1 data"},
			{},
			{"", "Group 1", "Group 2", "Group 3"},
			{"s1", "1.5", "2", "3"},
			{"s2", "2.5", "4"},
			{"s3", "3.5", "6", "9"},
		},
		{
			{"only"},
		},
	},
}

func col(t *testing.T, tab *table.Table, name string) []string {
	t.Helper()
	c := tab.Column(name)
	if c == nil {
		t.Fatalf("table has no column %q; columns are %q", name, tab.Columns())
	}
	return c.([]string)
}

func TestExtract(t *testing.T) {
	tab, err := testBook.extract("book.xlsx", ByName("Fig 1"), Range{3, 6}, Range{1, 4})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"...1", "Group 1", "Group 2", "Group 3"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Fatalf("columns: want %q, got %q", want, tab.Columns())
	}
	if tab.Len() != 3 {
		t.Fatalf("want 3 data rows, got %d", tab.Len())
	}
	if got, want := col(t, tab, "Group 1"), []string{"1.5", "2.5", "3.5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Group 1: want %q, got %q", want, got)
	}
	// Ragged rows read as empty cells.
	if got, want := col(t, tab, "Group 3"), []string{"3", "", "9"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Group 3: want %q, got %q", want, got)
	}
}

func TestExtractSubrect(t *testing.T) {
	tab, err := testBook.extract("book.xlsx", ByIndex(1), Range{3, 4}, Range{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Group 1", "Group 2"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Fatalf("columns: want %q, got %q", want, tab.Columns())
	}
	if got := col(t, tab, "Group 2"); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("Group 2: got %q", got)
	}
}

func TestExtractRangeErrors(t *testing.T) {
	for _, test := range []struct {
		sel        Selector
		rows, cols Range
		what       string
	}{
		{ByName("Fig 1"), Range{0, 3}, Range{1, 2}, "row"},
		{ByName("Fig 1"), Range{3, 7}, Range{1, 2}, "row"},
		{ByName("Fig 1"), Range{4, 3}, Range{1, 2}, "row"},
		{ByName("Fig 1"), Range{3, 6}, Range{1, 5}, "column"},
		{ByName("Fig 1"), Range{3, 6}, Range{0, 1}, "column"},
		{ByName("Fig 9"), Range{1, 1}, Range{1, 1}, "sheet"},
		{ByIndex(3), Range{1, 1}, Range{1, 1}, "sheet"},
		{ByIndex(0), Range{1, 1}, Range{1, 1}, "sheet"},
	} {
		_, err := testBook.extract("book.xlsx", test.sel, test.rows, test.cols)
		var rerr *RangeError
		if !errors.As(err, &rerr) {
			t.Errorf("%v %v %v: want RangeError, got %v", test.sel, test.rows, test.cols, err)
			continue
		}
		if rerr.What != test.what {
			t.Errorf("%v %v %v: want %s error, got %v", test.sel, test.rows, test.cols, test.what, err)
		}
	}
}

func TestParseSelector(t *testing.T) {
	// "2" is both a possible name and an index; a sheet actually
	// named "2" wins.
	wb := &workbook{
		names:  []string{"a", "b", "2"},
		sheets: [][][]string{{{"a"}}, {{"b"}}, {{"two"}}},
	}
	for _, test := range []struct {
		sel  string
		want string
	}{
		{"", "a"},
		{"b", "b"},
		{"1", "a"},
		{"2", "two"},
	} {
		grid, ok := wb.find(ParseSelector(test.sel))
		if !ok {
			t.Errorf("%q: sheet not found", test.sel)
			continue
		}
		if grid[0][0] != test.want {
			t.Errorf("%q: want sheet %s, got %s", test.sel, test.want, grid[0][0])
		}
	}
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{" Wild\ntype ", "", "ＫＯ", "KO", "Wild type"})
	want := []string{"Wild type", "...2", "KO", "KO...4", "Wild type...5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestParseRange(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Range
		ok   bool
	}{
		{"2:11", Range{2, 11}, true},
		{" 3 : 4 ", Range{3, 4}, true},
		{"7", Range{7, 7}, true},
		{"a:4", Range{}, false},
		{"3:", Range{}, false},
		{"0:0", Range{}, false},
		{"0:3", Range{}, false},
		{"-1", Range{}, false},
	} {
		got, err := ParseRange(test.in)
		if (err == nil) != test.ok {
			t.Errorf("ParseRange(%q): unexpected error state %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseRange(%q): want %v, got %v", test.in, test.want, got)
		}
	}

	// A zero bound never selects the whole sheet.
	_, err := ParseRange("0:0")
	var rerr *RangeError
	if !errors.As(err, &rerr) || rerr.What != "range" {
		t.Errorf("ParseRange(\"0:0\"): want RangeError, got %v", err)
	}
}

func TestParseCells(t *testing.T) {
	rows, cols, err := ParseCells("b2:F12")
	if err != nil {
		t.Fatal(err)
	}
	if rows != (Range{2, 12}) || cols != (Range{2, 6}) {
		t.Fatalf("want rows 2:12 cols 2:6, got rows %v cols %v", rows, cols)
	}
	if _, _, err := ParseCells("B2"); err == nil {
		t.Fatal("want error for a single cell")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.xlsx")
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Figure 2")
	if err != nil {
		t.Fatal(err)
	}
	row := sh.AddRow()
	for _, h := range []string{"Mouse", "Control", "Treated"} {
		row.AddCell().SetString(h)
	}
	for i, vals := range [][]float64{{1, 2}, {3.25, 5}} {
		row := sh.AddRow()
		row.AddCell().SetString([]string{"m1", "m2"}[i])
		for _, v := range vals {
			row.AddCell().SetFloat(v)
		}
	}
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}

	tab, err := Load(path, ByName("Figure 2"), Range{1, 3}, Range{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := col(t, tab, "Treated"), []string{"2", "5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Treated: want %q, got %q", want, got)
	}
	if got, want := col(t, tab, "Control"), []string{"1", "3.25"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Control: want %q, got %q", want, got)
	}
	if got, want := col(t, tab, "Mouse"), []string{"m1", "m2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Mouse: want %q, got %q", want, got)
	}

	_, err = Load(path, ByName("Figure 2"), Range{1, 4}, Range{1, 3})
	var rerr *RangeError
	if !errors.As(err, &rerr) {
		t.Fatalf("want RangeError for rows past the end, got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.csv")
	data := "id,A,B\nx,1,2\ny,3,4\n"
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	tab, err := Load(path, ParseSelector("cells"), Range{1, 3}, Range{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := col(t, tab, "B"), []string{"2", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("B: want %q, got %q", want, got)
	}
	// The zero Range is the whole sheet.
	tab, err = Load(path, ByIndex(1), Range{}, Range{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := col(t, tab, "id"), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("id: want %q, got %q", want, got)
	}
	if got := len(tab.Columns()); got != 3 {
		t.Errorf("want 3 columns, got %d", got)
	}
	if _, err := Load(path, ByIndex(2), Range{1, 3}, Range{1, 3}); err == nil {
		t.Errorf("want error for second sheet of a CSV file")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "x.ods"), ByIndex(1), Range{1, 1}, Range{1, 1}); err == nil {
		t.Errorf("want error for unsupported format")
	}
}
