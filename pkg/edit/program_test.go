package edit_test

import (
	"os"
	"path/filepath"
	"testing"

	. "gridedit.dev/pkg/edit"
	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/prog/progtest"
	"gridedit.dev/pkg/store"
	"gridedit.dev/pkg/store/storedefs"
	"gridedit.dev/pkg/testutil"
)

var (
	Test         = progtest.Test
	ThatGridedit = progtest.ThatGridedit
)

// Sets up a temporary working directory that is also the configuration
// directory.
func setup(t *testing.T) string {
	dir := testutil.InTempDir(t)
	testutil.Setenv(t, "XDG_CONFIG_HOME", dir)
	return dir
}

func TestProgram_Usage(t *testing.T) {
	setup(t)
	Test(t, &Program{},
		ThatGridedit().ExitsWith(2).
			WritesStderrContaining("need exactly two arguments, SCRIPT and FILE\nUsage:"),
		ThatGridedit("a", "b", "c").ExitsWith(2).
			WritesStderrContaining("need exactly two arguments"),
		ThatGridedit("-check").ExitsWith(2).
			WritesStderrContaining("-check needs the SCRIPT argument"),
	)
}

func TestProgram_Edit(t *testing.T) {
	setup(t)
	must.WriteFile("t.txt", "1 2\n3 4\n")
	must.WriteFile("c.txt", "a,b\n")

	Test(t, &Program{},
		ThatGridedit("[1,1,2,2];sum [1,3]", "t.txt").DoesNothing(),
		ThatGridedit("-d", ",", "[1,2];set q", "c.txt").DoesNothing(),
	)

	if got := must.ReadFileString("t.txt"); got != "1 2 10\n3 4 \n" {
		t.Errorf("t.txt is %q", got)
	}
	if got := must.ReadFileString("c.txt"); got != "a,q\n" {
		t.Errorf("c.txt is %q", got)
	}
}

func TestProgram_Dump(t *testing.T) {
	setup(t)
	must.WriteFile("t.txt", "1 2\n3 4\n")
	Test(t, &Program{},
		ThatGridedit("-dump", "[_,_];avg [1,3]", "t.txt").
			WritesStdoutContaining("rows 2 cols 3\n"),
	)
	if got := must.ReadFileString("t.txt"); got != "1 2 2.5\n3 4 \n" {
		t.Errorf("t.txt is %q", got)
	}
}

func TestProgram_Halt(t *testing.T) {
	setup(t)
	must.WriteFile("t.txt", "a b\n")
	Test(t, &Program{},
		ThatGridedit("[1,1];set x;bogus;set y", "t.txt").
			WritesStderrContaining(`unknown command or invalid selection "bogus"`),
	)
	if got := must.ReadFileString("t.txt"); got != "x b\n" {
		t.Errorf("t.txt is %q", got)
	}
}

func TestProgram_Failure(t *testing.T) {
	setup(t)
	must.WriteFile("t.txt", "a b\n")
	Test(t, &Program{},
		ThatGridedit("sum [1,1]", "t.txt").ExitsWith(2).
			WritesStderrContaining("selection not established\n  [script]:1:1: sum [1,1]"),
		ThatGridedit("[2,1];drow;drow", "t.txt").ExitsWith(2).
			WritesStderrContaining("DeleteRows(1, 1) out of range for size 1"),
	)
	if got := must.ReadFileString("t.txt"); got != "a b\n" {
		t.Errorf("t.txt is %q", got)
	}
}

func TestProgram_Check(t *testing.T) {
	setup(t)
	Test(t, &Program{},
		ThatGridedit("-check", "[1,1];sum [1,2]").DoesNothing(),
		ThatGridedit("-check", "[1,1];nope;[x]", "t.txt").ExitsWith(2).
			WritesStderrContaining(`"nope"`),
		ThatGridedit("-check", "-json", "[1,1];nope").ExitsWith(2).
			WritesStdout(`[{"fileName":"[script]","start":6,"end":10,` +
				`"message":"unknown command or invalid selection \"nope\""}]` + "\n"),
		ThatGridedit("-check", "-json", "[1,1]").WritesStdout("[]\n"),
	)
	if _, err := os.Stat("t.txt"); !os.IsNotExist(err) {
		t.Errorf("-check created the file")
	}
}

func TestProgram_RC(t *testing.T) {
	dir := setup(t)
	must.OK(os.MkdirAll(filepath.Join(dir, "gridedit"), 0755))
	must.WriteFile(filepath.Join(dir, "gridedit", "rc.yaml"), "delims: ','\n")
	must.WriteFile("a.txt", "a,b\n")
	must.WriteFile("b.txt", "a b\n")
	must.WriteFile("bad.yaml", "delims: [\n")

	Test(t, &Program{},
		ThatGridedit("[1,2];set q", "a.txt").DoesNothing(),
		// -d takes precedence.
		ThatGridedit("-d", " ", "[1,2];set q", "b.txt").DoesNothing(),
		ThatGridedit("-rc", "bad.yaml", "[1,2];set q", "b.txt").ExitsWith(2).
			WritesStderrContaining("bad.yaml: "),
	)

	if got := must.ReadFileString("a.txt"); got != "a,q\n" {
		t.Errorf("a.txt is %q", got)
	}
	if got := must.ReadFileString("b.txt"); got != "a q\n" {
		t.Errorf("b.txt is %q", got)
	}
}

func TestProgram_DB(t *testing.T) {
	dir := setup(t)
	must.WriteFile("t.txt", "a b\n")

	Test(t, &Program{},
		ThatGridedit("-db", "h.db", "[1,1];set x", "t.txt").DoesNothing(),
		ThatGridedit("-db", "h.db", "bogus", "t.txt").
			WritesStderrContaining("bogus"),
		ThatGridedit("-db", "h.db", "clear", "t.txt").ExitsWith(2).
			WritesStderrContaining("selection not established"),
	)

	st := must.OK1(store.NewStore("h.db"))
	defer st.Close()
	runs := must.OK1(st.Runs(0, 100))
	wantStatus := []storedefs.Status{
		storedefs.StatusOK, storedefs.StatusHalted, storedefs.StatusFailed}
	if len(runs) != len(wantStatus) {
		t.Fatalf("got %d runs, want %d", len(runs), len(wantStatus))
	}
	for i, r := range runs {
		if r.Status != wantStatus[i] || r.File != filepath.Join(dir, "t.txt") {
			t.Errorf("run %d is %+v", i, r)
		}
	}
}
