// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dotplot plots spreadsheet data as dot plots with summary
// crossbars.
//
// dotplot reads a rectangle of cells from an .xlsx, .csv, or .tsv
// file. The first row of the rectangle is the header. By default, the
// table is wide, with one column per group, and dotplot plots every
// value as a point over its group with a crossbar at the group's
// median:
//
//	dotplot -sheet "Fig 1" -cells B3:F13 -o fig1.svg data.xlsx
//
// With -pair, each row is instead one subject measured under two
// conditions. dotplot can join each subject's points with -lines, or
// plot the per-subject differences with -diff:
//
//	dotplot -pair before,after -subject mouse -lines data.csv
//	dotplot -pair before,after -subject mouse -by genotype -diff data.csv
//
// With -manifest, dotplot instead produces every figure listed in a
// YAML manifest (see package figures). Each figure's args are parsed
// as dotplot flags.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
)

func main() {
	log.SetPrefix("dotplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagManifest   = flag.String("manifest", "", "produce every figure in manifest `file`")
		flagDryRun     = flag.Bool("n", false, "with -manifest, print each figure's command instead of running it")
		flagFigures    stringList
	)
	flag.Var(&flagFigures, "figure", "with -manifest, produce only figure `name` (repeatable)")
	cfg := figureFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -manifest file [-n] [-figure name...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	if *flagManifest != "" {
		if flag.NArg() != 0 {
			flag.Usage()
			os.Exit(2)
		}
		if set := setFigureFlags(flag.CommandLine); len(set) > 0 {
			log.Fatalf("-manifest: set -%s in each figure's args instead", strings.Join(set, ", -"))
		}
		if err := runManifest(*flagManifest, flagFigures, *flagDryRun, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *flagDryRun || len(flagFigures) > 0 {
		log.Fatal("-n and -figure require -manifest")
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.input = flag.Arg(0)
	if err := cfg.check(); err != nil {
		log.Fatal(err)
	}
	if err := figure(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
