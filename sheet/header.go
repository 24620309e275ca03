// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalizeHeader cleans up header cell text. Spreadsheets exported
// from lab software are full of non-breaking spaces, full-width
// digits, and stray line breaks in header cells.
func normalizeHeader(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// headerNames turns a raw header row into unique column names. An
// empty header is named "...j" and a repeated one gets a "...j"
// suffix, where j is the 1-based position in the row.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool)
	for j, h := range raw {
		h = normalizeHeader(h)
		pos := "..." + strconv.Itoa(j+1)
		switch {
		case h == "":
			h = pos
		case seen[h]:
			h += pos
		}
		seen[h] = true
		names[j] = h
	}
	return names
}
