package diag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gridedit.dev/pkg/sys"
)

// Style contains the markers used when showing errors.
type Style struct {
	CulpritStart, CulpritEnd string
	MessageStart, MessageEnd string
}

var (
	// Plain uses no markers.
	Plain = Style{}
	// Styled uses VT escape sequences: the culprit is bold and underlined,
	// and the message is bold and red.
	Styled = Style{"\033[1;4m", "\033[m", "\033[31;1m", "\033[m"}
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// StyledShower wraps the ShowStyled function.
type StyledShower interface {
	ShowStyled(indent string, st Style) string
}

// Can be overridden in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && sys.IsFileATTY(f)
}

// StyleFor returns Styled if w is a terminal and Plain otherwise.
func StyleFor(w io.Writer) Style {
	if isTerminal(w) {
		return Styled
	}
	return Plain
}

// ShowError shows an error to w. It uses the ShowStyled or Show method if the
// error (or any error it wraps) implements them, and uses Complain to print
// the error message otherwise.
func ShowError(w io.Writer, err error) {
	var ss StyledShower
	var sh Shower
	switch {
	case errors.As(err, &ss):
		fmt.Fprintln(w, ss.ShowStyled("", StyleFor(w)))
	case errors.As(err, &sh):
		fmt.Fprintln(w, sh.Show(""))
	default:
		Complain(w, err.Error())
	}
}

// Complain prints a message to w, in bold and red if w is a terminal, adding
// a trailing newline.
func Complain(w io.Writer, msg string) {
	st := StyleFor(w)
	fmt.Fprintf(w, "%s%s%s\n", st.MessageStart, msg, st.MessageEnd)
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}
