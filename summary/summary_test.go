// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package summary

import (
	"errors"
	"flag"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-dotplot/tidy"
)

func TestSummarize(t *testing.T) {
	for _, test := range []struct {
		xs   []float64
		s    Statistic
		want float64
	}{
		{[]float64{1, 2, 3, 4}, Median, 2.5},
		{[]float64{1, 2, 3}, Median, 2},
		{[]float64{4, 1, 3, 2}, Median, 2.5},
		{[]float64{7}, Median, 7},
		{[]float64{-3, 10, 0}, Median, 0},
		{[]float64{1, 2, 3, 4}, Mean, 2.5},
		{[]float64{1, 1, 10}, Mean, 4},
	} {
		got, err := Summarize(test.xs, test.s)
		if err != nil {
			t.Errorf("%v of %v: %v", test.s, test.xs, err)
			continue
		}
		if got != test.want {
			t.Errorf("%v of %v: want %v, got %v", test.s, test.xs, test.want, got)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, s := range []Statistic{Median, Mean} {
		if _, err := Summarize(nil, s); !errors.Is(err, ErrEmpty) {
			t.Errorf("%v of []: want ErrEmpty, got %v", s, err)
		}
	}
}

func TestSummarizeDoesNotSort(t *testing.T) {
	xs := []float64{3, 1, 2}
	if _, err := Summarize(xs, Median); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(xs, []float64{3, 1, 2}) {
		t.Fatalf("input modified: %v", xs)
	}
}

func TestStatisticFlag(t *testing.T) {
	var s Statistic
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&s, "stat", "")
	if err := fs.Parse([]string{"-stat", "mean"}); err != nil {
		t.Fatal(err)
	}
	if s != Mean {
		t.Fatalf("want mean, got %v", s)
	}
	if err := s.Set("mode"); err == nil {
		t.Fatal("want error for unknown statistic")
	}
}

func TestByGroup(t *testing.T) {
	obs := []tidy.Observation{
		{Subject: "a", Group: "Group 2", Value: 10},
		{Subject: "a", Group: "Group 1", Value: 1},
		{Subject: "b", Group: "Group 2", Value: 30},
		{Subject: "b", Group: "Group 1", Value: 2},
		{Subject: "c", Group: "Group 1", Value: 100},
	}
	got, err := ByGroup(obs, Median)
	if err != nil {
		t.Fatal(err)
	}
	// Groups are never pooled: the pooled median would be 10.
	want := []Result{{Group: "Group 2", Value: 20}, {Group: "Group 1", Value: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	if got, err := ByGroup(nil, Median); err != nil || len(got) != 0 {
		t.Fatalf("no observations: want no results, got %v, %v", got, err)
	}
}

func TestTable(t *testing.T) {
	long := new(table.Builder).
		Add("panel", []string{"A", "A", "B", "B", "A"}).
		Add("group", []string{"x", "x", "x", "x", "y"}).
		Add("value", []float64{1, 3, 10, 20, 5}).
		Done()
	got, err := Table(long, "panel", "group", "value", Mean)
	if err != nil {
		t.Fatal(err)
	}
	want := []Result{{"A", "x", 2}, {"B", "x", 15}, {"A", "y", 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

// TestMedianOfDifferences checks that the median change between
// paired conditions is computed from per-subject differences, and
// that on this data it differs from the difference of the medians.
func TestMedianOfDifferences(t *testing.T) {
	wide := new(table.Builder).
		Add("mouse", []string{"m1", "m2", "m3", "m4"}).
		Add("before", []string{"1", "5", "2", "8"}).
		Add("after", []string{"4", "6", "2.5", "6"}).
		Done()
	p := tidy.Pair{Subject: "mouse", Cond1: "before", Cond2: "after"}
	long, err := tidy.ToPaired(wide, p)
	if err != nil {
		t.Fatal(err)
	}
	diffs, err := tidy.Differences(long, p)
	if err != nil {
		t.Fatal(err)
	}
	medDiff, err := Summarize(diffs.MustColumn(tidy.Difference).([]float64), Median)
	if err != nil {
		t.Fatal(err)
	}
	if medDiff != 0.75 {
		t.Errorf("median of differences: want 0.75, got %v", medDiff)
	}

	obs, err := tidy.Observations(long, "mouse", "condition", "value")
	if err != nil {
		t.Fatal(err)
	}
	meds, err := ByGroup(obs, Median)
	if err != nil {
		t.Fatal(err)
	}
	if meds[0].Group != "before" || meds[1].Group != "after" {
		t.Fatalf("unexpected group order %+v", meds)
	}
	diffOfMeds := meds[1].Value - meds[0].Value
	if diffOfMeds != 1.5 {
		t.Errorf("difference of medians: want 1.5, got %v", diffOfMeds)
	}
	if medDiff == diffOfMeds {
		t.Errorf("median of differences equals difference of medians (%v); counter-example is broken", medDiff)
	}
}
