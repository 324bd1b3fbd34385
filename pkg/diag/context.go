package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a range of text in a source. It is typically used for errors that
// can be associated with a part of a script.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Position returns the 1-based line and column of the start of the range.
// Columns count codepoints.
func (c *Context) Position() (line, col int) {
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(lastLine(before)) + 1
	return line, col
}

// Show shows the context in the plain style.
func (c *Context) Show(indent string) string {
	return c.ShowStyled(indent, Plain)
}

// ShowStyled shows the context as "name:line:col: " followed by the relevant
// line of source, with the culprit marked using the given style.
func (c *Context) ShowStyled(indent string, st Style) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	var sb strings.Builder
	sb.WriteString(c.describeStart())
	sb.WriteString(": ")

	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	sb.WriteString(lastLine(before))
	if culprit == "" {
		culprit = culpritPlaceholder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(st.CulpritStart)
		sb.WriteString(line)
		sb.WriteString(st.CulpritEnd)
	}
	sb.WriteString(firstLine(after))
	return sb.String()
}

const culpritPlaceholder = "^"

func (c *Context) describeStart() string {
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
