package logutil

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/testutil"
)

func TestGetLogger_DiscardsByDefault(t *testing.T) {
	SetOutputFile("")
	// Must not panic.
	GetLogger("[test] ").Println("discarded")
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLogger("[test] ")
	SetOutput(&buf)
	t.Cleanup(func() { SetOutputFile("") })

	logger.Println("hello")
	if !strings.Contains(buf.String(), "[test] ") ||
		!strings.HasSuffix(buf.String(), "hello\n") {
		t.Errorf("log output is %q", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	dir := testutil.TempDir(t)
	fname := filepath.Join(dir, "log")
	logger := GetLogger("[file] ")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	SetOutputFile("")

	if content := must.ReadFileString(fname); !strings.Contains(content, "[file] ") {
		t.Errorf("log file content is %q", content)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := SetOutputFile(filepath.Join(dir, "no", "such", "dir")); err == nil {
		t.Errorf("SetOutputFile to bad path returns nil")
	}
	t.Cleanup(func() { SetOutputFile("") })
}
