package table

import "fmt"

// IndexError is returned when a cell outside the table is accessed.
type IndexError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cell (%d, %d) out of range for %dx%d table",
		e.Row, e.Col, e.Rows, e.Cols)
}

// RangeError is returned when a structural edit is given a position or count
// that does not fit the table.
type RangeError struct {
	Op    string
	Pos   int
	Count int
	// Size is the number of rows or columns the edit applied to.
	Size int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s(%d, %d) out of range for size %d",
		e.Op, e.Pos, e.Count, e.Size)
}
