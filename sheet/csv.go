// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
)

// readCSV reads a delimited text file as a workbook with one sheet,
// named after the file.
func readCSV(path string, comma rune) (*workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	grid, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &workbook{names: []string{name}, sheets: [][][]string{grid}}, nil
}
