package tabfmt

import (
	"bufio"
	"io"
	"os"

	"gridedit.dev/pkg/table"
)

// Write writes t to w. Cells are joined by d.Sep() and every row, including
// the last one, is terminated by a newline. Cell text is written verbatim;
// cells containing delimiters or quotes are not quoted, so the output may not
// parse back to the same table.
func Write(w io.Writer, t *table.Table, d Delims) error {
	bw := bufio.NewWriter(w)
	sep := d.Sep()
	for i := 0; i < t.Rows(); i++ {
		row, _ := t.Row(i)
		for j := range row {
			if j > 0 {
				bw.WriteByte(sep)
			}
			bw.Write(row[j].Bytes())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes t to the named file, truncating it first.
func WriteFile(name string, t *table.Table, d Delims) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	err = Write(f, t, d)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// File is an open file whose content can be replaced in place.
type File interface {
	io.Writer
	io.Seeker
	Truncate(size int64) error
}

// Rewrite replaces the content of f with t.
func Rewrite(f File, t *table.Table, d Delims) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	return Write(f, t, d)
}
