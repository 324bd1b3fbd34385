// Package interp executes command scripts against a table.
package interp

import (
	"errors"
	"fmt"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/logutil"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/selection"
	"gridedit.dev/pkg/table"
)

var logger = logutil.GetLogger("[interp] ")

// ErrNoSelection is the cause of errors from commands that need a selection
// executed before any selection literal.
var ErrNoSelection = errors.New("selection not established")

var errInvalidSelection = errors.New("invalid selection")

// Halt is returned by Run when the script stops at a command that is neither
// recognized nor a valid selection literal. It is not a failure: the commands
// before it have taken effect and the table is in a consistent state.
type Halt struct {
	Err *diag.Error
}

func (h *Halt) Error() string { return h.Err.Error() }

// Unwrap returns the underlying *diag.Error.
func (h *Halt) Unwrap() error { return h.Err }

// Interp holds a table and the current selection.
type Interp struct {
	t   *table.Table
	sel *selection.Rect
	// If not nil, called with every command before it is executed.
	Trace func(script.Command)
}

// New creates an Interp operating on t. There is no selection initially.
func New(t *table.Table) *Interp {
	return &Interp{t: t}
}

// Table returns the table the Interp operates on.
func (in *Interp) Table() *table.Table { return in.t }

// Selection returns the current selection, and false if no selection has been
// established.
func (in *Interp) Selection() (selection.Rect, bool) {
	if in.sel == nil {
		return selection.Rect{}, false
	}
	return *in.sel, true
}

// Eval parses and runs a script.
func (in *Interp) Eval(src script.Source) error {
	return in.Run(src, script.Parse(src))
}

// Run executes commands parsed from src in order.
//
// It returns a *Halt if a command is an invalid selection literal. Any other
// error is a *diag.Error about the failing command, which wraps
// ErrNoSelection, a *table.IndexError or a *table.RangeError; the commands
// before it have taken effect.
func (in *Interp) Run(src script.Source, cmds []script.Command) error {
	for _, cmd := range cmds {
		if in.Trace != nil {
			in.Trace(cmd)
		}
		err := in.exec(cmd)
		if err == nil {
			continue
		}
		if errors.Is(err, errInvalidSelection) {
			logger.Printf("halted at %q", cmd.Literal)
			return &Halt{script.NewError(src, cmd, script.InvalidMessage(cmd.Literal), nil)}
		}
		logger.Printf("%v failed: %v", cmd, err)
		return script.NewError(src, cmd, err.Error(), err)
	}
	return nil
}

func (in *Interp) exec(cmd script.Command) error {
	if cmd.Kind == script.Select {
		return in.selectRange(cmd.Literal)
	}
	if in.sel == nil {
		return ErrNoSelection
	}
	s, t := *in.sel, in.t
	switch cmd.Kind {
	case script.InsertRow:
		return t.InsertRows(s.StartRow, 1)
	case script.AppendRow:
		return t.InsertRows(s.EndRow+1, 1)
	case script.DeleteRow:
		return t.DeleteRows(s.StartRow, s.RowSpan())
	case script.InsertCol:
		return t.InsertCols(s.StartCol, 1)
	case script.AppendCol:
		return t.InsertCols(s.EndCol+1, 1)
	case script.DeleteCol:
		return t.DeleteCols(s.StartCol, s.ColSpan())
	case script.Aggregate:
		return in.aggregate(cmd.Agg, s, cmd.Row, cmd.Col)
	case script.Set:
		return t.SetText(s.StartRow, s.StartCol, cmd.Text)
	case script.Clear:
		return in.forEach(s, (*table.Cell).Clear)
	}
	return fmt.Errorf("unknown command kind %v", cmd.Kind)
}

// Replaces the selection, growing the table to cover it.
func (in *Interp) selectRange(lit string) error {
	r, ok := selection.Parse(lit, in.t.Rows(), in.t.Cols())
	if !ok {
		return errInvalidSelection
	}
	in.t.Grow(r.EndRow+1, r.EndCol+1)
	in.sel = &r
	return nil
}

// Calls f with every cell in r. It checks that r lies within the table before
// calling f on any cell.
func (in *Interp) forEach(r selection.Rect, f func(*table.Cell)) error {
	if r.RowSpan() <= 0 || r.ColSpan() <= 0 {
		return nil
	}
	if _, err := in.t.Cell(r.StartRow, r.StartCol); err != nil {
		return err
	}
	if _, err := in.t.Cell(r.EndRow, r.EndCol); err != nil {
		return err
	}
	for i := r.StartRow; i <= r.EndRow; i++ {
		for j := r.StartCol; j <= r.EndCol; j++ {
			c, _ := in.t.Cell(i, j)
			f(c)
		}
	}
	return nil
}
