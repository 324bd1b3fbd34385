// Package selection resolves selection literals of the script language.
//
// A selection literal is written with 1-based coordinates in brackets:
//
//	[r,c,r2,c2]  rows r..r2, columns c..c2
//	[r,c]        a single cell
//	[_,c]        the whole column c
//	[r,_]        the whole row r
//	[_,_]        the whole table
//
// Resolved selections are 0-based and inclusive.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is a rectangle of cells, with 0-based inclusive bounds.
type Rect struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Cell returns the Rect covering the single cell at a 0-based position.
func Cell(row, col int) Rect { return Rect{row, col, row, col} }

// RowSpan returns the number of rows covered by r.
func (r Rect) RowSpan() int { return r.EndRow - r.StartRow + 1 }

// ColSpan returns the number of columns covered by r.
func (r Rect) ColSpan() int { return r.EndCol - r.StartCol + 1 }

// String returns r in the 1-based literal syntax.
func (r Rect) String() string {
	if r.StartRow == r.EndRow && r.StartCol == r.EndCol {
		return fmt.Sprintf("[%d,%d]", r.StartRow+1, r.StartCol+1)
	}
	return fmt.Sprintf("[%d,%d,%d,%d]",
		r.StartRow+1, r.StartCol+1, r.EndRow+1, r.EndCol+1)
}

// A component of a literal: a positive integer, or a wildcard.
type item struct {
	n        int
	wildcard bool
}

// Parse resolves a selection literal against a table with the given
// dimensions, which are only used by the forms with wildcards. It returns
// false if lit is not a valid selection literal.
//
// The forms are tried in the order listed in the package documentation, and
// the first one that matches wins.
func Parse(lit string, rows, cols int) (Rect, bool) {
	items, ok := split(lit)
	if !ok {
		return Rect{}, false
	}
	switch {
	case len(items) == 4 && allNumbers(items):
		r := Rect{items[0].n - 1, items[1].n - 1, items[2].n - 1, items[3].n - 1}
		if r.StartRow > r.EndRow || r.StartCol > r.EndCol {
			return Rect{}, false
		}
		return r, true
	case len(items) != 2:
		return Rect{}, false
	case allNumbers(items):
		return Cell(items[0].n-1, items[1].n-1), true
	case items[0].wildcard && !items[1].wildcard:
		c := items[1].n - 1
		return Rect{0, c, rows - 1, c}, true
	case !items[0].wildcard && items[1].wildcard:
		r := items[0].n - 1
		return Rect{r, 0, r, cols - 1}, true
	default:
		return Rect{0, 0, rows - 1, cols - 1}, true
	}
}

// ParseCell parses a literal of the [r,c] form, returning the 0-based
// position.
func ParseCell(lit string) (row, col int, ok bool) {
	items, ok := split(lit)
	if !ok || len(items) != 2 || !allNumbers(items) {
		return 0, 0, false
	}
	return items[0].n - 1, items[1].n - 1, true
}

// Splits a literal into its comma-separated items.
func split(lit string) ([]item, bool) {
	lit = strings.TrimSpace(lit)
	if !strings.HasPrefix(lit, "[") || !strings.HasSuffix(lit, "]") {
		return nil, false
	}
	fields := strings.Split(lit[1:len(lit)-1], ",")
	items := make([]item, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "_" {
			items[i] = item{wildcard: true}
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return nil, false
		}
		items[i] = item{n: n}
	}
	return items, true
}

func allNumbers(items []item) bool {
	for _, it := range items {
		if it.wildcard {
			return false
		}
	}
	return true
}
