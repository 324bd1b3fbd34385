// Package table implements the in-memory grid edited by gridedit.
//
// A Table is a rows×cols grid of Cells kept row-major in a single slice.
// Structural edits (inserting and deleting whole rows or columns) are
// expressed as sub-range copies into a freshly sized arena; the Table is only
// updated once the new arena is complete, so a failed edit leaves it in its
// last consistent state.
package table

import "fmt"

// Cell is the text content of one position in a Table. A Cell with zero
// length is blank.
type Cell struct {
	data []byte
}

// Len returns the length of the cell text in bytes.
func (c *Cell) Len() int { return len(c.data) }

// Blank reports whether the cell has no text.
func (c *Cell) Blank() bool { return len(c.data) == 0 }

// String returns the cell text.
func (c *Cell) String() string { return string(c.data) }

// Bytes returns the cell text. The caller must not modify the returned slice.
func (c *Cell) Bytes() []byte { return c.data }

// Set replaces the cell text with a private copy of s. The previous buffer is
// dropped.
func (c *Cell) Set(s string) {
	if s == "" {
		c.data = nil
		return
	}
	c.data = []byte(s)
}

// SetBytes is like Set, but takes a byte slice.
func (c *Cell) SetBytes(b []byte) {
	if len(b) == 0 {
		c.data = nil
		return
	}
	c.data = append([]byte(nil), b...)
}

// Clear makes the cell blank.
func (c *Cell) Clear() { c.data = nil }

// Table is a rectangular grid of cells.
type Table struct {
	rows, cols int
	// Invariant: len(cells) == rows*cols.
	cells []Cell
}

// New creates a Table with the given dimensions, with all cells blank.
func New(rows, cols int) *Table {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("table.New: negative dimensions %dx%d", rows, cols))
	}
	return &Table{rows, cols, make([]Cell, rows*cols)}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

// Cell returns the cell at the given 0-based position.
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return nil, &IndexError{row, col, t.rows, t.cols}
	}
	return &t.cells[row*t.cols+col], nil
}

// Text returns the text of the cell at the given position.
func (t *Table) Text(row, col int) (string, error) {
	c, err := t.Cell(row, col)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// SetText replaces the text of the cell at the given position.
func (t *Table) SetText(row, col int, s string) error {
	c, err := t.Cell(row, col)
	if err != nil {
		return err
	}
	c.Set(s)
	return nil
}

// Swap exchanges the content of two cells.
func (t *Table) Swap(row1, col1, row2, col2 int) error {
	c1, err := t.Cell(row1, col1)
	if err != nil {
		return err
	}
	c2, err := t.Cell(row2, col2)
	if err != nil {
		return err
	}
	*c1, *c2 = *c2, *c1
	return nil
}

// Row returns the cells of one row. The returned slice aliases the table
// storage and is invalidated by any structural edit.
func (t *Table) Row(row int) ([]Cell, error) {
	if row < 0 || row >= t.rows {
		return nil, &IndexError{row, 0, t.rows, t.cols}
	}
	return t.cells[row*t.cols : (row+1)*t.cols], nil
}
