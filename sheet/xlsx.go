// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

func readXLSX(path string) (*workbook, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	wb := new(workbook)
	for _, sh := range f.Sheets {
		grid := make([][]string, len(sh.Rows))
		for i, row := range sh.Rows {
			if row == nil {
				continue
			}
			cells := make([]string, len(row.Cells))
			for j, c := range row.Cells {
				cells[j] = cellText(c)
			}
			grid[i] = cells
		}
		wb.names = append(wb.names, sh.Name)
		wb.sheets = append(wb.sheets, grid)
	}
	return wb, nil
}

// cellText returns the text of c. Numeric cells use the stored value
// rather than the display format so no precision is lost to a
// "0.00" number format.
func cellText(c *xlsx.Cell) string {
	if c == nil {
		return ""
	}
	if c.Type() == xlsx.CellTypeNumeric {
		return c.Value
	}
	return c.String()
}

// ParseCells parses an A1-style rectangle such as "B2:F12" into row
// and column ranges.
func ParseCells(s string) (rows, cols Range, err error) {
	i := strings.Index(s, ":")
	if i < 0 {
		return Range{}, Range{}, fmt.Errorf("bad cell range %q: want form A1:B2", s)
	}
	x0, y0, err := xlsx.GetCoordsFromCellIDString(strings.ToUpper(strings.TrimSpace(s[:i])))
	if err != nil {
		return Range{}, Range{}, fmt.Errorf("bad cell range %q: %v", s, err)
	}
	x1, y1, err := xlsx.GetCoordsFromCellIDString(strings.ToUpper(strings.TrimSpace(s[i+1:])))
	if err != nil {
		return Range{}, Range{}, fmt.Errorf("bad cell range %q: %v", s, err)
	}
	return Range{y0 + 1, y1 + 1}, Range{x0 + 1, x1 + 1}, nil
}
