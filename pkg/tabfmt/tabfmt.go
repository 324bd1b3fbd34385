// Package tabfmt reads and writes the delimited text format of tables.
//
// Rows are lines. Cells within a row are separated by any byte of a delimiter
// set. A span enclosed in double quotes does not split on delimiters, and a
// backslash makes the byte following it lose its meaning as a delimiter or a
// quote. Quotes and backslashes are kept in the cell text.
package tabfmt

import "strings"

// Delims is a set of delimiter bytes. The empty Delims stands for a single
// space. A newline is never a delimiter.
type Delims string

// IsDelim reports whether b is a delimiter.
func (d Delims) IsDelim(b byte) bool {
	if b == '\n' {
		return false
	}
	if d == "" {
		return b == ' '
	}
	return strings.IndexByte(string(d), b) >= 0
}

// Sep returns the byte used to join cells when writing: the first byte of the
// set, or a space for the empty set.
func (d Delims) Sep() byte {
	if d == "" {
		return ' '
	}
	return d[0]
}

// DefaultMaxCellBytes is the default bound on the length of one cell.
const DefaultMaxCellBytes = 1000

// Config keeps configuration for Read.
type Config struct {
	Delims Delims
	// MaxCellBytes is the maximum length of one cell. If zero,
	// DefaultMaxCellBytes is used.
	MaxCellBytes int
}

func (cfg Config) maxCellBytes() int {
	if cfg.MaxCellBytes <= 0 {
		return DefaultMaxCellBytes
	}
	return cfg.MaxCellBytes
}
