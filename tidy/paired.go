// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidy

import (
	"fmt"

	"github.com/aclements/go-gg/table"
)

// Difference is the name of the column ToPaired adds to hold each
// subject's cond2 - cond1 difference.
const Difference = "difference"

// Pair describes a wide table of matched measurements: one row per
// subject, with the subject's value under two conditions in columns
// Cond1 and Cond2.
type Pair struct {
	// Subject names the column identifying each subject.
	Subject string

	// Group optionally names a column that groups subjects (for
	// example, genotype). It may be "".
	Group string

	// Cond1 and Cond2 name the two condition columns. The
	// difference is Cond2 - Cond1.
	Cond1, Cond2 string

	// Condition and Value name the key and value columns of the
	// long result. They default to "condition" and "value".
	Condition, Value string
}

func (p *Pair) names() (cond, value string) {
	cond, value = p.Condition, p.Value
	if cond == "" {
		cond = "condition"
	}
	if value == "" {
		value = "value"
	}
	return
}

// A PairedObservation is one subject's measurement under one
// condition, together with that subject's between-condition
// difference.
type PairedObservation struct {
	Subject   string
	Group     string // "" if the data is not grouped
	Condition string
	Value     float64

	// Difference is value(Cond2) - value(Cond1) for Subject. It
	// is the same on both of a subject's rows.
	Difference    float64
	HasDifference bool
}

// ToPaired converts a wide table of matched measurements to long
// form. The difference between conditions is computed per subject
// while the table is still wide, and carried on both of the subject's
// long rows in a column named Difference. Deriving it again from the
// long rows would depend on their order.
//
// The result has columns Subject, Group (if set), p.Condition,
// p.Value, and Difference, with two rows per subject (Cond1 first).
func ToPaired(t *table.Table, p Pair) (*table.Table, error) {
	cond, value := p.names()
	c1, err := Floats(t, p.Cond1)
	if err != nil {
		return nil, err
	}
	c2, err := Floats(t, p.Cond2)
	if err != nil {
		return nil, err
	}
	diff := make([]float64, len(c1))
	for i := range diff {
		diff[i] = c2[i] - c1[i]
	}

	wide := new(table.Builder)
	ids := []string{p.Subject}
	if p.Group != "" {
		ids = append(ids, p.Group)
	}
	for _, id := range ids {
		c := t.Column(id)
		if c == nil {
			return nil, &ValueError{Col: id, Msg: "no such column"}
		}
		wide.Add(id, c)
	}
	if err := uniqueSubjects(t, p); err != nil {
		return nil, err
	}
	wide.Add(Difference, diff).Add(p.Cond1, c1).Add(p.Cond2, c2)

	long := root(table.Unpivot(wide.Done(), cond, value, p.Cond1, p.Cond2))

	// Put the difference last, after the condition and value.
	out := new(table.Builder)
	for _, id := range ids {
		out.Add(id, long.MustColumn(id))
	}
	out.Add(cond, long.MustColumn(cond))
	out.Add(value, long.MustColumn(value))
	out.Add(Difference, long.MustColumn(Difference))
	return out.Done(), nil
}

// PairedObservations extracts the rows of a table produced by
// ToPaired.
func PairedObservations(t *table.Table, p Pair) ([]PairedObservation, error) {
	cond, value := p.names()
	subjects, err := Strings(t, p.Subject)
	if err != nil {
		return nil, err
	}
	conds, err := Strings(t, cond)
	if err != nil {
		return nil, err
	}
	values, err := Floats(t, value)
	if err != nil {
		return nil, err
	}
	var groups []string
	if p.Group != "" {
		if groups, err = Strings(t, p.Group); err != nil {
			return nil, err
		}
	}
	var diffs []float64
	if t.Column(Difference) != nil {
		if diffs, err = Floats(t, Difference); err != nil {
			return nil, err
		}
	}

	obs := make([]PairedObservation, len(subjects))
	for i := range obs {
		o := PairedObservation{Subject: subjects[i], Condition: conds[i], Value: values[i]}
		if groups != nil {
			o.Group = groups[i]
		}
		if diffs != nil {
			o.Difference, o.HasDifference = diffs[i], true
		}
		obs[i] = o
	}
	return obs, nil
}

// Differences returns one row per subject of a table produced by
// ToPaired, with columns Subject, Group (if set), and Difference, in
// order of first appearance. This is the input to a plot of
// per-subject differences, whose summary must be taken over these
// rows and not derived from per-condition summaries.
//
// A subject is identified by its Group and Subject together, so
// subjects numbered separately in each group stay distinct. Every
// subject must have exactly two rows; otherwise Differences returns a
// *ValueError.
func Differences(t *table.Table, p Pair) (*table.Table, error) {
	obs, err := PairedObservations(t, p)
	if err != nil {
		return nil, err
	}
	type key struct{ group, subject string }
	var order []key
	rows := make(map[key]int)
	diff := make(map[key]float64)
	for _, o := range obs {
		if !o.HasDifference {
			return nil, &ValueError{Col: Difference, Msg: "no such column"}
		}
		k := key{o.Group, o.Subject}
		if rows[k] == 0 {
			order = append(order, k)
			diff[k] = o.Difference
		}
		rows[k]++
	}
	subjects, groups := []string{}, []string{}
	diffs := []float64{}
	for _, k := range order {
		if n := rows[k]; n != 2 {
			return nil, &ValueError{Col: p.Subject, Subject: k.subject, Msg: fmt.Sprintf("want 2 paired rows, got %d", n)}
		}
		subjects = append(subjects, k.subject)
		groups = append(groups, k.group)
		diffs = append(diffs, diff[k])
	}
	b := new(table.Builder).Add(p.Subject, subjects)
	if p.Group != "" {
		b.Add(p.Group, groups)
	}
	return b.Add(Difference, diffs).Done(), nil
}

// uniqueSubjects checks that no (Group, Subject) pair of wide table t
// appears on more than one row.
func uniqueSubjects(t *table.Table, p Pair) error {
	subjects, err := Strings(t, p.Subject)
	if err != nil {
		return err
	}
	var groups []string
	if p.Group != "" {
		if groups, err = Strings(t, p.Group); err != nil {
			return err
		}
	}
	first := make(map[[2]string]int)
	for i, s := range subjects {
		k := [2]string{"", s}
		if groups != nil {
			k[0] = groups[i]
		}
		if j, ok := first[k]; ok {
			return &ValueError{Row: i + 1, Col: p.Subject, Cell: s, Subject: s, Msg: fmt.Sprintf("subject repeats row %d", j)}
		}
		first[k] = i + 1
	}
	return nil
}
