// Package interptest provides a framework for testing scripts.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("[1,1];set x").WithTable("a b\n").Leaves("x b\n"),
//	    That("bogus").Halts())
package interptest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/interp"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/selection"
	"gridedit.dev/pkg/tabfmt"
)

// Case is a test case that can be used in Test.
type Case struct {
	code   string
	input  string
	delims tabfmt.Delims
	verify func(t *testing.T, in *interp.Interp)
	want   result
}

type result struct {
	table     *string
	selection *selection.Rect
	halt      bool
	cause     error
}

// That returns a new Case with the given script. Multiple arguments are joined
// with semicolons.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "set x" changes the top-left cell of
// the selection reads:
//
//	That("[1,1]", "set x").WithTable("a b\n").Leaves("x b\n")
func That(cmds ...string) Case {
	return Case{code: strings.Join(cmds, ";")}
}

// WithTable returns an altered Case that runs the script against the table
// parsed from the given text. The table is empty by default.
func (c Case) WithTable(text string) Case {
	c.input = text
	return c
}

// WithDelims returns an altered Case that parses and writes the table with the
// given delimiter set.
func (c Case) WithDelims(d tabfmt.Delims) Case {
	c.delims = d
	return c
}

// Leaves returns an altered Case that requires the table to serialize to the
// given text after the script has run.
func (c Case) Leaves(text string) Case {
	c.want.table = &text
	return c
}

// Selects returns an altered Case that requires the selection to be r after
// the script has run.
func (c Case) Selects(r selection.Rect) Case {
	c.want.selection = &r
	return c
}

// Halts returns an altered Case that requires the script to stop at an invalid
// selection literal.
func (c Case) Halts() Case {
	c.want.halt = true
	return c
}

// Throws returns an altered Case that requires the script to fail with a
// *diag.Error caused by an error that is either identical (as in errors.Is)
// or equal (as in cmp.Equal) to cause.
func (c Case) Throws(cause error) Case {
	c.want.cause = cause
	return c
}

// Passes returns an altered Case that runs an additional verification function
// on the Interp after the script has run.
func (c Case) Passes(f func(t *testing.T, in *interp.Interp)) Case {
	c.verify = f
	return c
}

// DoesNothing returns c unchanged. It is useful to mark tests that don't have
// any requirement beyond running without error, for example:
//
//	That("").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Test runs test cases. For each test case, a new Interp is created on the
// table of the test case.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Helper()
			tbl, err := tabfmt.Parse([]byte(tc.input), tabfmt.Config{Delims: tc.delims})
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.input, err)
			}
			in := interp.New(tbl)
			err = in.Eval(script.Source{Name: "[test]", Code: tc.code})

			checkErr(t, tc.want, err)
			if tc.want.table != nil {
				var buf bytes.Buffer
				tabfmt.Write(&buf, in.Table(), tc.delims)
				if got := buf.String(); got != *tc.want.table {
					t.Errorf("got table %q, want %q", got, *tc.want.table)
				}
			}
			if tc.want.selection != nil {
				sel, ok := in.Selection()
				if !ok {
					t.Errorf("got no selection, want %v", *tc.want.selection)
				} else if sel != *tc.want.selection {
					t.Errorf("got selection %#v, want %#v", sel, *tc.want.selection)
				}
			}
			if tc.verify != nil {
				tc.verify(t, in)
			}
		})
	}
}

func checkErr(t *testing.T, want result, err error) {
	t.Helper()
	var halt *interp.Halt
	isHalt := errors.As(err, &halt)
	switch {
	case want.halt:
		if !isHalt {
			t.Errorf("got error %v, want halt", err)
		}
	case want.cause != nil:
		var derr *diag.Error
		if isHalt || !errors.As(err, &derr) {
			t.Errorf("got error %v (%T), want *diag.Error", err, err)
		} else if !errors.Is(derr.Cause, want.cause) && !cmp.Equal(derr.Cause, want.cause) {
			t.Errorf("got cause %#v, want %#v", derr.Cause, want.cause)
		}
	case err != nil:
		t.Errorf("got error %v, want nil", err)
	}
}
