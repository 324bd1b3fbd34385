package diag

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Error represents an error with context that can be shown.
type Error struct {
	Type    string
	Message string
	Context Context
	// Cause is the underlying error, if any. It is returned by Unwrap.
	Cause error
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.describeStart(), e.Message)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error in the plain style.
func (e *Error) Show(indent string) string {
	return e.ShowStyled(indent, Plain)
}

// ShowStyled shows the error, with the type capitalized, followed by the
// context on a new line.
func (e *Error) ShowStyled(indent string, st Style) string {
	return fmt.Sprintf("%s: %s%s%s\n%s%s",
		capitalize(e.Type), st.MessageStart, e.Message, st.MessageEnd,
		indent+"  ", e.Context.ShowStyled(indent+"  ", st))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}
