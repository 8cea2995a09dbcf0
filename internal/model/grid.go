package model

import (
	"strings"
	"unicode/utf8"
)

// Grid holds the glyph rows produced by a conversion, top row first.
// Every row has the same number of glyphs.
type Grid struct {
	Rows []string
}

// Width returns the number of glyphs per row.
func (g Grid) Width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return utf8.RuneCountInString(g.Rows[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g.Rows)
}

// Empty reports whether the grid has no glyphs.
func (g Grid) Empty() bool {
	return g.Width() == 0 || g.Height() == 0
}

// String joins the rows with newlines. There is no trailing newline.
func (g Grid) String() string {
	return strings.Join(g.Rows, "\n")
}
