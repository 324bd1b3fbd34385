// Package script splits command scripts into commands.
//
// A script is a sequence of commands separated by semicolons. A semicolon
// preceded by a backslash does not separate commands. Each command is one of
//
//	irow arow drow          insert/append/delete rows around the selection
//	icol acol dcol          the same for columns
//	sum avg count len swap  aggregates, followed by a target cell like [1,3]
//	set TEXT                set the top-left cell of the selection
//	clear                   blank the whole selection
//
// or otherwise a selection literal; see package selection.
package script

import (
	"fmt"
	"strings"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/selection"
)

// Source is a script and the name it is referred to in errors.
type Source struct {
	Name string
	Code string
}

// Kind classifies a Command.
type Kind int

// Possible values of Kind.
const (
	InsertRow Kind = iota
	AppendRow
	DeleteRow
	InsertCol
	AppendCol
	DeleteCol
	Aggregate
	Set
	Clear
	Select
)

// Names of the structural commands, indexed by Kind.
var structuralNames = [...]string{
	InsertRow: "irow", AppendRow: "arow", DeleteRow: "drow",
	InsertCol: "icol", AppendCol: "acol", DeleteCol: "dcol",
}

func (k Kind) String() string {
	switch {
	case k >= 0 && k <= DeleteCol:
		return structuralNames[k]
	case k == Aggregate:
		return "aggregate"
	case k == Set:
		return "set"
	case k == Clear:
		return "clear"
	case k == Select:
		return "select"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Agg identifies an aggregate command.
type Agg int

// Possible values of Agg.
const (
	Sum Agg = iota
	Avg
	Count
	Len
	Swap
)

// AggNames contains the names of the aggregates, indexed by Agg.
var AggNames = [...]string{Sum: "sum", Avg: "avg", Count: "count", Len: "len", Swap: "swap"}

func (a Agg) String() string {
	if a < 0 || int(a) >= len(AggNames) {
		return fmt.Sprintf("Agg(%d)", int(a))
	}
	return AggNames[a]
}

// CommandNames returns the names of all commands, in the order they are
// recognized.
func CommandNames() []string {
	names := make([]string, 0, len(structuralNames)+len(AggNames)+2)
	names = append(names, structuralNames[:]...)
	names = append(names, AggNames[:]...)
	return append(names, "set", "clear")
}

// Command is one command of a script.
type Command struct {
	Kind Kind
	// Aggregate and target cell (0-based) of an Aggregate command.
	Agg      Agg
	Row, Col int
	// Text of a Set command, with escaped semicolons unescaped.
	Text string
	// Literal of a Select command. It is resolved when the command is
	// executed, since wildcards depend on the size of the table.
	Literal string
	// Position of the command in the script.
	diag.Ranging
}

// String returns the command in script syntax.
func (c Command) String() string {
	switch c.Kind {
	case Aggregate:
		return c.Agg.String() + " " + selection.Cell(c.Row, c.Col).String()
	case Set:
		return "set " + strings.ReplaceAll(c.Text, ";", `\;`)
	case Select:
		return c.Literal
	}
	return c.Kind.String()
}

// Name returns the name of the command, or "" for a Select command.
func (c Command) Name() string {
	switch c.Kind {
	case Aggregate:
		return c.Agg.String()
	case Select:
		return ""
	}
	return c.Kind.String()
}

// Parse splits a script into commands. It never fails: a command that is not
// recognized is taken to be a selection literal, which may turn out to be
// invalid when it is executed. Use Check to find such commands beforehand.
func Parse(src Source) []Command {
	var cmds []Command
	code := src.Code
	start := 0
	for start <= len(code) {
		end := indexUnescapedSemicolon(code, start)
		if cmd, ok := classify(code, start, end); ok {
			cmds = append(cmds, cmd)
		}
		start = end + 1
	}
	return cmds
}

// Returns the index of the first semicolon at or after start that is not
// preceded by an unescaped backslash, or len(s) if there is none.
func indexUnescapedSemicolon(s string, start int) int {
	escaped := false
	for i := start; i < len(s); i++ {
		if s[i] == ';' && !escaped {
			return i
		}
		escaped = s[i] == '\\' && !escaped
	}
	return len(s)
}

// Classifies the token code[from:to].
func classify(code string, from, to int) (Command, bool) {
	raw := code[from:to]
	left := strings.TrimLeft(raw, " \t\n")
	tok := strings.TrimRight(left, " \t\n")
	if tok == "" {
		return Command{}, false
	}
	from += len(raw) - len(left)
	r := diag.Ranging{From: from, To: from + len(tok)}

	for k, name := range structuralNames {
		if tok == name {
			return Command{Kind: Kind(k), Ranging: r}, true
		}
	}
	for a, name := range AggNames {
		if rest, ok := strings.CutPrefix(tok, name); ok {
			if row, col, ok := selection.ParseCell(rest); ok {
				return Command{Kind: Aggregate, Agg: Agg(a), Row: row, Col: col, Ranging: r}, true
			}
		}
	}
	if text, ok := strings.CutPrefix(left, "set "); ok {
		// The text extends to the end of the raw token, including trailing
		// whitespace.
		r.To = to
		return Command{Kind: Set, Text: strings.ReplaceAll(text, `\;`, ";"), Ranging: r}, true
	}
	if tok == "clear" {
		return Command{Kind: Clear, Ranging: r}, true
	}
	return Command{Kind: Select, Literal: tok, Ranging: r}, true
}

// ErrorType is the type of errors about scripts.
const ErrorType = "script error"

// NewError returns a *diag.Error about a part of a script.
func NewError(src Source, r diag.Ranger, msg string, cause error) *diag.Error {
	return &diag.Error{
		Type: ErrorType, Message: msg,
		Context: *diag.NewContext(src.Name, src.Code, r), Cause: cause}
}

// Check returns errors for all the commands in the script that are not
// recognized and are not valid selection literals. Executing the script
// would stop at the first of them.
func Check(src Source) []*diag.Error {
	var errs []*diag.Error
	for _, cmd := range Parse(src) {
		if cmd.Kind != Select {
			continue
		}
		if _, ok := selection.Parse(cmd.Literal, 0, 0); !ok {
			errs = append(errs, NewError(src, cmd, InvalidMessage(cmd.Literal), nil))
		}
	}
	return errs
}

// InvalidMessage returns the message used for a command that is neither
// recognized nor a valid selection literal.
func InvalidMessage(lit string) string {
	return fmt.Sprintf("unknown command or invalid selection %q", lit)
}
