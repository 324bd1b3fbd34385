package dump

import (
	"bytes"
	"strings"
	"testing"

	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/table"
)

func TestWrite(t *testing.T) {
	tbl := table.New(2, 3)
	must.OK(tbl.SetText(0, 0, "alpha"))
	must.OK(tbl.SetText(1, 2, "omega"))

	var buf bytes.Buffer
	must.OK(Write(&buf, tbl))
	out := buf.String()

	if !strings.HasPrefix(out, "rows 2 cols 3\n") {
		t.Errorf("output doesn't start with dimensions: %q", out)
	}
	for _, s := range []string{"alpha", "omega"} {
		if !strings.Contains(out, s) {
			t.Errorf("output doesn't contain %q: %q", s, out)
		}
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	alpha := indexOfLineContaining(lines, "alpha")
	omega := indexOfLineContaining(lines, "omega")
	if alpha == -1 || omega == -1 || alpha >= omega {
		t.Errorf("cells rendered out of order: %q", out)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	must.OK(Write(&buf, table.New(0, 0)))
	if got := buf.String(); got != "rows 0 cols 0\n" {
		t.Errorf("got %q", got)
	}
}

func indexOfLineContaining(lines []string, s string) int {
	for i, line := range lines {
		if strings.Contains(line, s) {
			return i
		}
	}
	return -1
}
