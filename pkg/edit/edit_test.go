package edit

import (
	"errors"
	"os"
	"testing"
	"time"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/interp"
	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/testutil"
)

var editTests = []struct {
	name     string
	cfg      Config
	input    *string
	wantFile string
	wantHalt bool
}{
	{
		name:     "sum grows the table",
		cfg:      Config{Script: "[1,1,2,2];sum [1,3]"},
		input:    strPtr("1 2\n3 4\n"),
		wantFile: "1 2 10\n3 4 \n",
	},
	{
		name:     "missing file is an empty table",
		cfg:      Config{Script: "[1,1];set x"},
		wantFile: "x\n",
	},
	{
		name:     "halted script still writes",
		cfg:      Config{Script: "[1,1];set x;oops;set y"},
		input:    strPtr("a b\n"),
		wantFile: "x b\n",
		wantHalt: true,
	},
	{
		name:     "delimiter set",
		cfg:      Config{Delims: ",;", Script: "[1,3];set z"},
		input:    strPtr("a,b;c\n"),
		wantFile: "a,b,z\n",
	},
	{
		name:     "cell too long stops parsing",
		cfg:      Config{MaxCellBytes: 3, Script: ""},
		input:    strPtr("abcdef g\nh i\n"),
		wantFile: " \n \n",
	},
	{
		name:     "empty script rewrites the file",
		cfg:      Config{Script: ""},
		input:    strPtr("a  b\nc\n"),
		wantFile: "a  b\nc  \n",
	},
}

func strPtr(s string) *string { return &s }

func TestEdit(t *testing.T) {
	for _, test := range editTests {
		t.Run(test.name, func(t *testing.T) {
			testutil.InTempDir(t)
			if test.input != nil {
				must.WriteFile("t.txt", *test.input)
			}
			cfg := test.cfg
			cfg.File = "t.txt"

			out, err := Edit(cfg)
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if got := must.ReadFileString("t.txt"); got != test.wantFile {
				t.Errorf("got file %q, want %q", got, test.wantFile)
			}
			if halted := out.Halt != nil; halted != test.wantHalt {
				t.Errorf("got halted %v, want %v", halted, test.wantHalt)
			}
		})
	}
}

func TestEdit_FailureDoesNotWrite(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("t.txt", "a b\n")

	out, err := Edit(Config{File: "t.txt", Script: "set x"})
	var derr *diag.Error
	if out != nil || !errors.As(err, &derr) || !errors.Is(err, interp.ErrNoSelection) {
		t.Errorf("got %v, %v, want nil and *diag.Error wrapping ErrNoSelection", out, err)
	}
	if got := must.ReadFileString("t.txt"); got != "a b\n" {
		t.Errorf("file changed to %q", got)
	}
}

func TestEdit_WriteError(t *testing.T) {
	testutil.InTempDir(t)
	must.OK(os.Mkdir("d", 0755))

	out, err := Edit(Config{File: "d", Script: "[1,1];set x"})
	if out == nil || err == nil {
		t.Errorf("got %v, %v, want outcome and error", out, err)
	}
}

func TestEdit_ReleasesLock(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("t.txt", "1 2\n3 4\n")

	for i := 0; i < 2; i++ {
		done := make(chan error, 1)
		go func() {
			_, err := Edit(Config{File: "t.txt", Script: "[_,1];sum [3,1]"})
			done <- err
		}()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("edit %d: %v", i, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("edit %d blocked on the lock", i)
		}
	}
	// The second run sums the first column including the earlier result.
	if got, want := must.ReadFileString("t.txt"), "1 2\n3 4\n8 \n"; got != want {
		t.Errorf("got file %q, want %q", got, want)
	}
}

func TestEdit_Trace(t *testing.T) {
	testutil.InTempDir(t)
	var traced []string
	Edit(Config{File: "t.txt", Script: "[1,1];clear",
		Trace: func(cmd script.Command) { traced = append(traced, cmd.String()) }})
	if len(traced) != 2 || traced[0] != "[1,1]" || traced[1] != "clear" {
		t.Errorf("traced %q", traced)
	}
}
