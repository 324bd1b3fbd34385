package tabfmt

import (
	"fmt"
	"io"
	"os"

	"gridedit.dev/pkg/logutil"
	"gridedit.dev/pkg/table"
)

var logger = logutil.GetLogger("[tabfmt] ")

// CellTooLongError is returned by Read when a cell exceeds the configured
// bound.
type CellTooLongError struct {
	// 0-based position of the cell.
	Row, Col int
	Max      int
}

func (e *CellTooLongError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is longer than %d bytes", e.Row, e.Col, e.Max)
}

// ReadFile reads a table from the named file. If the file cannot be read, it
// returns an empty table along with the error.
func ReadFile(name string, cfg Config) (*table.Table, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return table.New(0, 0), err
	}
	return Parse(data, cfg)
}

// Read reads a table from r. If reading fails, it returns an empty table
// along with the error.
func Read(r io.Reader, cfg Config) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return table.New(0, 0), err
	}
	return Parse(data, cfg)
}

// Parse parses a table from data. Rows with fewer cells than the longest row
// are padded with blank cells.
//
// If a cell is longer than cfg.MaxCellBytes, parsing stops and Parse returns
// the table populated so far, with the remaining cells blank, along with a
// *CellTooLongError.
func Parse(data []byte, cfg Config) (*table.Table, error) {
	rows, cols := measure(data, cfg.Delims)
	logger.Printf("measured %dx%d", rows, cols)
	t := table.New(rows, cols)
	return t, populate(t, data, cfg)
}

// Counts the rows and the maximum number of cells in a row.
//
// Inside a quoted span, newlines are not counted as row breaks. The populate
// pass below always breaks rows at newlines; when the two disagree, populate
// grows the table.
func measure(data []byte, d Delims) (rows, cols int) {
	inQuote, escaped := false, false
	cur := 0
	endRow := func() {
		rows++
		cur++
		if cur > cols {
			cols = cur
		}
		cur = 0
	}
	for _, b := range data {
		switch {
		case inQuote:
			if b == '"' && !escaped {
				inQuote = false
			}
		case b == '"' && !escaped:
			inQuote = true
		case d.IsDelim(b) && !escaped:
			cur++
		case b == '\n':
			endRow()
		}
		escaped = b == '\\' && !escaped
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		endRow()
	}
	return rows, cols
}

func populate(t *table.Table, data []byte, cfg Config) error {
	limit := cfg.maxCellBytes()
	d := cfg.Delims
	row, col := 0, 0
	var buf []byte
	closeCell := func() {
		if row >= t.Rows() || col >= t.Cols() {
			logger.Printf("cell (%d, %d) outside measured %dx%d table, growing",
				row, col, t.Rows(), t.Cols())
			t.Grow(row+1, col+1)
		}
		c, _ := t.Cell(row, col)
		c.SetBytes(buf)
		buf = buf[:0]
	}

	inQuote, escaped := false, false
	for _, b := range data {
		switch {
		case b == '"' && !escaped:
			buf = append(buf, b)
			inQuote = !inQuote
		case b == '\n':
			closeCell()
			row++
			col = 0
		case d.IsDelim(b) && !escaped && !inQuote:
			closeCell()
			col++
		default:
			buf = append(buf, b)
		}
		if len(buf) > limit {
			return &CellTooLongError{row, col, limit}
		}
		escaped = b == '\\' && !escaped
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		closeCell()
	}
	return nil
}
