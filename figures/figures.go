// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figures reads manifests of figures to reproduce.
//
// A manifest is a YAML file listing figures. Each figure gives the
// dotplot command-line arguments that produce it, so a manifest is a
// record of exactly which sheet, cells, and options made each
// published figure:
//
//	input: data/figures.xlsx
//	figures:
//	  - name: fig1b
//	    output: fig1b.svg
//	    args: -sheet "Fig 1" -cells B3:F13 -col 'Group 1' -col 'Group 2'
//	  - name: fig2
//	    input: data/paired.csv
//	    output: fig2.png
//	    args: -pair before,after -subject mouse -lines
//
// Relative input and output paths are relative to the manifest.
package figures

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// A Manifest is a list of figures.
type Manifest struct {
	// Input is the default spreadsheet for figures that do not
	// name their own.
	Input string `yaml:"input,omitempty"`

	Figures []Figure `yaml:"figures"`
}

// A Figure is one plot to produce.
type Figure struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`

	// Args is a shell-quoted string of dotplot flags.
	Args string `yaml:"args"`
}

// Parse reads a manifest from r. Unknown keys are errors, so a typo
// in a manifest does not silently drop an option.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	m := new(Manifest)
	if err := dec.Decode(m); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for i := range m.Figures {
		f := &m.Figures[i]
		if f.Name == "" {
			return nil, fmt.Errorf("figure %d has no name", i+1)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate figure %q", f.Name)
		}
		seen[f.Name] = true
		if f.Input == "" {
			f.Input = m.Input
		}
		if f.Input == "" {
			return nil, fmt.Errorf("figure %q: no input", f.Name)
		}
		if f.Output == "" {
			f.Output = f.Name + ".svg"
		}
		if _, err := f.Flags(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Load reads the manifest at path and resolves relative paths in it
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range m.Figures {
		m.Figures[i].Input = rel(m.Figures[i].Input)
		m.Figures[i].Output = rel(m.Figures[i].Output)
	}
	return m, nil
}

// Flags splits f.Args into words.
func (f *Figure) Flags() ([]string, error) {
	words, err := shellquote.Split(f.Args)
	if err != nil {
		return nil, fmt.Errorf("figure %q: bad args: %w", f.Name, err)
	}
	return words, nil
}

// Argv returns the complete dotplot argument list for f: its flags,
// an -o flag for its output, and its input.
func (f *Figure) Argv() ([]string, error) {
	words, err := f.Flags()
	if err != nil {
		return nil, err
	}
	return append(words, "-o", f.Output, f.Input), nil
}

// CommandLine returns a shell command that produces f.
func (f *Figure) CommandLine() string {
	argv, err := f.Argv()
	if err != nil {
		return "# " + err.Error()
	}
	return shellquote.Join(append([]string{"dotplot"}, argv...)...)
}
