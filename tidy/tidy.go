// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tidy reshapes wide tables into long ("tidy") form.
//
// A wide table has one row per subject and one column per group or
// condition. A long table has one row per (subject, group) pair,
// with the group name in a key column and the measurement in a value
// column. Long tables are what package plot consumes.
package tidy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ValueError reports a cell that cannot be used as a number, or a
// subject with the wrong number of rows for paired data.
type ValueError struct {
	Row     int    // 1-based data row, or 0 if not row-specific
	Col     string // column name, or "" if not column-specific
	Cell    string // offending cell text
	Subject string // offending subject, for pairing errors
	Msg     string
}

func (e *ValueError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	if e.Col != "" {
		fmt.Fprintf(&b, "column %q: ", e.Col)
	}
	if e.Subject != "" {
		fmt.Fprintf(&b, "subject %q: ", e.Subject)
	}
	b.WriteString(e.Msg)
	if e.Cell != "" || (e.Row > 0 && e.Col != "") {
		fmt.Fprintf(&b, " (cell %q)", e.Cell)
	}
	return b.String()
}

// An Observation is one measurement of one subject in one group.
type Observation struct {
	Subject string // "" if the data has no subject column
	Group   string
	Value   float64
}

// root returns the single table of an ungrouped Grouping.
func root(g table.Grouping) *table.Table {
	if t := g.Table(table.RootGroupID); t != nil {
		return t
	}
	return new(table.Table)
}

// Strings returns column name of t as strings. Numeric columns are
// formatted with strconv.
func Strings(t *table.Table, name string) ([]string, error) {
	c := t.Column(name)
	if c == nil {
		return nil, &ValueError{Col: name, Msg: "no such column"}
	}
	switch c := c.(type) {
	case []string:
		return c, nil
	case []float64:
		out := make([]string, len(c))
		for i, v := range c {
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return out, nil
	}
	return nil, &ValueError{Col: name, Msg: fmt.Sprintf("unsupported column type %T", c)}
}

// Floats returns column name of t as numbers. Cells are trimmed of
// surrounding space before parsing. NaN and infinite values are
// errors.
func Floats(t *table.Table, name string) ([]float64, error) {
	c := t.Column(name)
	if c == nil {
		return nil, &ValueError{Col: name, Msg: "no such column"}
	}
	switch c := c.(type) {
	case []float64:
		for i, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ValueError{Row: i + 1, Col: name, Cell: strconv.FormatFloat(v, 'g', -1, 64), Msg: "not a finite number"}
			}
		}
		return c, nil
	case []string:
		out := make([]float64, len(c))
		for i, s := range c {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, &ValueError{Row: i + 1, Col: name, Cell: s, Msg: "not a number"}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ValueError{Row: i + 1, Col: name, Cell: s, Msg: "not a finite number"}
			}
			out[i] = v
		}
		return out, nil
	}
	return nil, &ValueError{Col: name, Msg: fmt.Sprintf("unsupported column type %T", c)}
}

// ToLong converts wide table t to long form. For each row of t and
// each column in valueCols, in that order, it emits one row holding
// the row's idCols, the column's name in a column called key, and the
// cell converted to a number in a column called value. Columns of t
// that are in neither idCols nor valueCols are dropped.
//
// The result has t.Len()*len(valueCols) rows. If a cell is not a
// number, ToLong returns a *ValueError naming it.
func ToLong(t *table.Table, idCols, valueCols []string, key, value string) (*table.Table, error) {
	if len(valueCols) == 0 {
		return nil, &ValueError{Msg: "no value columns"}
	}
	b := new(table.Builder)
	for _, id := range idCols {
		c := t.Column(id)
		if c == nil {
			return nil, &ValueError{Col: id, Msg: "no such column"}
		}
		b.Add(id, c)
	}
	for _, vc := range valueCols {
		xs, err := Floats(t, vc)
		if err != nil {
			return nil, err
		}
		b.Add(vc, xs)
	}
	return root(table.Unpivot(b.Done(), key, value, valueCols...)), nil
}

// ToWide is the inverse of ToLong: it spreads the value column of
// long table t into one column per distinct key. The remaining
// columns of t identify rows.
func ToWide(t *table.Table, key, value string) *table.Table {
	return root(table.Pivot(t, key, value))
}

// Observations extracts the rows of long table t. subject may be ""
// if t has no subject column.
func Observations(t *table.Table, subject, group, value string) ([]Observation, error) {
	groups, err := Strings(t, group)
	if err != nil {
		return nil, err
	}
	values, err := Floats(t, value)
	if err != nil {
		return nil, err
	}
	var subjects []string
	if subject != "" {
		if subjects, err = Strings(t, subject); err != nil {
			return nil, err
		}
	}
	obs := make([]Observation, len(groups))
	for i := range obs {
		obs[i] = Observation{Group: groups[i], Value: values[i]}
		if subjects != nil {
			obs[i].Subject = subjects[i]
		}
	}
	return obs, nil
}
