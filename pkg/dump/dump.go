// Package dump renders tables for inspection.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gridedit.dev/pkg/table"
)

// Write writes the dimensions of t, followed by its cells in a boxed grid.
// Rows and columns are labeled with the 1-based numbers used in selection
// literals.
func Write(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintf(w, "rows %d cols %d\n", t.Rows(), t.Cols()); err != nil {
		return err
	}
	if t.Rows() == 0 || t.Cols() == 0 {
		return nil
	}
	tw := tablewriter.NewTable(w)
	header := make([]any, t.Cols()+1)
	header[0] = ""
	for j := 0; j < t.Cols(); j++ {
		header[j+1] = strconv.Itoa(j + 1)
	}
	tw.Header(header...)
	for i := 0; i < t.Rows(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		cells := make([]string, len(row)+1)
		cells[0] = strconv.Itoa(i + 1)
		for j := range row {
			cells[j+1] = row[j].String()
		}
		if err := tw.Append(cells); err != nil {
			return err
		}
	}
	return tw.Render()
}
