package table

// InsertRows inserts count blank rows before the given row. The row index may
// equal Rows(), in which case the rows are appended.
func (t *Table) InsertRows(before, count int) error {
	if count < 0 || before < 0 || before > t.rows {
		return &RangeError{"InsertRows", before, count, t.rows}
	}
	if count == 0 {
		return nil
	}
	cells := make([]Cell, (t.rows+count)*t.cols)
	cut := before * t.cols
	copy(cells, t.cells[:cut])
	copy(cells[cut+count*t.cols:], t.cells[cut:])
	t.cells = cells
	t.rows += count
	return nil
}

// InsertCols inserts count blank columns before the given column. The column
// index may equal Cols(), in which case the columns are appended.
func (t *Table) InsertCols(before, count int) error {
	if count < 0 || before < 0 || before > t.cols {
		return &RangeError{"InsertCols", before, count, t.cols}
	}
	if count == 0 {
		return nil
	}
	newCols := t.cols + count
	cells := make([]Cell, t.rows*newCols)
	for i := 0; i < t.rows; i++ {
		src := t.cells[i*t.cols : (i+1)*t.cols]
		dst := cells[i*newCols : (i+1)*newCols]
		copy(dst, src[:before])
		copy(dst[before+count:], src[before:])
	}
	t.cells = cells
	t.cols = newCols
	return nil
}

// DeleteRows removes count rows starting at the given row.
func (t *Table) DeleteRows(after, count int) error {
	if count < 0 || after < 0 || after+count > t.rows {
		return &RangeError{"DeleteRows", after, count, t.rows}
	}
	if count == 0 {
		return nil
	}
	cells := make([]Cell, (t.rows-count)*t.cols)
	cut := after * t.cols
	copy(cells, t.cells[:cut])
	copy(cells[cut:], t.cells[cut+count*t.cols:])
	t.cells = cells
	t.rows -= count
	return nil
}

// DeleteCols removes count columns starting at the given column.
func (t *Table) DeleteCols(after, count int) error {
	if count < 0 || after < 0 || after+count > t.cols {
		return &RangeError{"DeleteCols", after, count, t.cols}
	}
	if count == 0 {
		return nil
	}
	newCols := t.cols - count
	cells := make([]Cell, t.rows*newCols)
	for i := 0; i < t.rows; i++ {
		src := t.cells[i*t.cols : (i+1)*t.cols]
		dst := cells[i*newCols : (i+1)*newCols]
		copy(dst, src[:after])
		copy(dst[after:], src[after+count:])
	}
	t.cells = cells
	t.cols = newCols
	return nil
}

// Grow appends blank rows and columns at the end until the table has at
// least the given dimensions. It never shrinks the table.
func (t *Table) Grow(rows, cols int) {
	if rows > t.rows {
		t.InsertRows(t.rows, rows-t.rows)
	}
	if cols > t.cols {
		t.InsertCols(t.cols, cols-t.cols)
	}
}
