// Package edit implements the editor: it reads a table from a file, runs a
// script on it and writes it back to the same file.
package edit

import (
	"errors"
	"fmt"
	"io/fs"

	"gridedit.dev/pkg/fsutil"
	"gridedit.dev/pkg/interp"
	"gridedit.dev/pkg/logutil"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/table"
	"gridedit.dev/pkg/tabfmt"
)

var logger = logutil.GetLogger("[edit] ")

// Config contains what an edit needs.
type Config struct {
	Delims tabfmt.Delims
	File   string
	Script string
	// Bound on the length of a cell; 0 means tabfmt.DefaultMaxCellBytes.
	MaxCellBytes int
	// If not nil, called with every command before it is executed.
	Trace func(script.Command)
}

// Outcome is the result of an edit that did not fail.
type Outcome struct {
	Table *table.Table
	// Non-nil if the script stopped at an invalid selection literal.
	Halt *interp.Halt
}

// Edit locks cfg.File, reads the table from it, runs cfg.Script on the table
// and writes the table back to cfg.File. The file is read and written through
// the locked handle.
//
// A file that cannot be opened is treated as an empty table, and a cell that
// is too long stops parsing; in both cases the edit carries on with the table
// read so far. A script that halts still has the table written.
//
// If the script fails, Edit returns a *diag.Error and does not write the
// table. The returned error may also come from locking or writing the file.
func Edit(cfg Config) (*Outcome, error) {
	tcfg := tabfmt.Config{Delims: cfg.Delims, MaxCellBytes: cfg.MaxCellBytes}
	var t *table.Table
	f, err := fsutil.Lock(cfg.File)
	var openErr *fs.PathError
	switch {
	case err == nil:
		defer unlock(f)
		t, err = tabfmt.Read(f, tcfg)
	case errors.As(err, &openErr):
		t = table.New(0, 0)
	default:
		return nil, err
	}
	if err != nil {
		var tooLong *tabfmt.CellTooLongError
		if errors.As(err, &tooLong) {
			logger.Printf("parsing %s stopped: %v", cfg.File, err)
		} else {
			logger.Printf("cannot read %s, using empty table: %v", cfg.File, err)
		}
	}
	logger.Printf("read %dx%d table from %s", t.Rows(), t.Cols(), cfg.File)

	in := interp.New(t)
	in.Trace = cfg.Trace
	out := &Outcome{Table: t}
	err = in.Eval(script.Source{Name: "[script]", Code: cfg.Script})
	if err != nil {
		if !errors.As(err, &out.Halt) {
			return nil, err
		}
		logger.Println(err)
	}

	if f != nil {
		err = tabfmt.Rewrite(f, t, cfg.Delims)
	} else {
		err = tabfmt.WriteFile(cfg.File, t, cfg.Delims)
	}
	if err != nil {
		return out, fmt.Errorf("cannot write table: %w", err)
	}
	logger.Printf("wrote %dx%d table to %s", t.Rows(), t.Cols(), cfg.File)
	return out, nil
}

func unlock(f *fsutil.LockedFile) {
	if err := f.Unlock(); err != nil {
		logger.Println("unlock:", err)
	}
}
