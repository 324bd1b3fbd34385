package rc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gridedit.dev/pkg/must"
	"gridedit.dev/pkg/testutil"
)

func strPtr(s string) *string { return &s }

var parseTests = []struct {
	name    string
	text    string
	want    *Config
	wantErr string
}{
	{"empty", "", &Config{}, ""},
	{"all keys",
		"delims: \",;\"\nmax-cell-bytes: 20\ndb: /tmp/db\nlog: /tmp/log\n",
		&Config{Delims: strPtr(",;"), MaxCellBytes: 20, DB: "/tmp/db", Log: "/tmp/log"}, ""},
	{"empty delims is kept", "delims: ''\n", &Config{Delims: strPtr("")}, ""},
	{"unknown key", "delimiters: ','\n", nil, "delimiters"},
	{"negative bound", "max-cell-bytes: -1\n", nil, "must not be negative"},
	{"bad type", "max-cell-bytes: lots\n", nil, "cannot unmarshal"},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.text))
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Errorf("got error %v, want error containing %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	testutil.Setenv(t, "XDG_CONFIG_HOME", "/xdg")
	if got := must.OK1(DefaultPath()); got != filepath.FromSlash("/xdg/gridedit/rc.yaml") {
		t.Errorf("got %q", got)
	}
	testutil.Setenv(t, "XDG_CONFIG_HOME", "")
	testutil.Setenv(t, "HOME", "/home/u")
	if got := must.OK1(DefaultPath()); got != filepath.FromSlash("/home/u/.config/gridedit/rc.yaml") {
		t.Errorf("got %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.Setenv(t, "XDG_CONFIG_HOME", dir)
	testutil.Setenv(t, "HOME", "/home/u")

	// A missing default file is not an error.
	cfg, err := Load("")
	if err != nil || cfg == nil || *cfg != (Config{}) {
		t.Errorf("Load with no default file -> %v, %v", cfg, err)
	}

	// A missing explicit file is.
	if _, err := Load("nope.yaml"); !os.IsNotExist(err) {
		t.Errorf("Load(nope.yaml) -> error %v, want not exist", err)
	}

	must.OK(os.MkdirAll(filepath.Join(dir, "gridedit"), 0755))
	must.WriteFile(filepath.Join(dir, "gridedit", "rc.yaml"), "db: ~/h.db\nlog: l\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.FromSlash("/home/u/h.db"); cfg.DB != want || cfg.Log != "l" {
		t.Errorf("got DB %q Log %q, want %q and %q", cfg.DB, cfg.Log, want, "l")
	}

	must.WriteFile("bad.yaml", "[")
	if _, err := Load("bad.yaml"); err == nil || !strings.HasPrefix(err.Error(), "bad.yaml: ") {
		t.Errorf("Load(bad.yaml) -> error %v", err)
	}
}
