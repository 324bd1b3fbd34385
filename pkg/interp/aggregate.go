package interp

import (
	"errors"
	"strconv"
	"strings"

	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/selection"
	"gridedit.dev/pkg/table"
)

// Computes an aggregate of the selection s and stores it in the target cell,
// growing the table to cover the target.
//
// The average of an empty selection, such as [_,_] on an empty table, is 0/0
// and is written as NaN.
func (in *Interp) aggregate(agg script.Agg, s selection.Rect, row, col int) error {
	var result string
	switch agg {
	case script.Sum, script.Avg:
		var sum float64
		err := in.forEach(s, func(c *table.Cell) { sum += parseNumber(c.String()) })
		if err != nil {
			return err
		}
		if agg == script.Avg {
			sum /= float64(s.RowSpan() * s.ColSpan())
		}
		result = FormatNumber(sum)
	case script.Count:
		n := 0
		err := in.forEach(s, func(c *table.Cell) {
			if !c.Blank() {
				n++
			}
		})
		if err != nil {
			return err
		}
		result = strconv.Itoa(n)
	case script.Len:
		text, err := in.t.Text(s.StartRow, s.StartCol)
		if err != nil {
			return err
		}
		result = strconv.Itoa(len(text))
	case script.Swap:
		if _, err := in.t.Cell(s.StartRow, s.StartCol); err != nil {
			return err
		}
		in.growTo(row, col)
		return in.t.Swap(s.StartRow, s.StartCol, row, col)
	}
	in.growTo(row, col)
	return in.t.SetText(row, col, result)
}

func (in *Interp) growTo(row, col int) {
	if row >= in.t.Rows() || col >= in.t.Cols() {
		logger.Printf("growing %dx%d table to cover target (%d, %d)",
			in.t.Rows(), in.t.Cols(), row, col)
	}
	in.t.Grow(row+1, col+1)
}

// Parses cell text as a decimal number. Text that is empty or not a number
// counts as 0. A number too large for a float64 counts as ±Inf.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

// FormatNumber formats a number in the shortest form that parses back to the
// same value, using an exponent only for very large or small magnitudes.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
