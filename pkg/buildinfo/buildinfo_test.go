package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "gridedit.dev/pkg/prog/progtest"
	"gridedit.dev/pkg/tt"
)

func TestProgram(t *testing.T) {
	info := fmt.Sprintf("Version: %v\n", Value.Version)
	if Value.Revision != "" {
		info += fmt.Sprintf("Revision: %v\n", Value.Revision)
	}
	info += fmt.Sprintf("Go version: %v\nReproducible build: %v\n",
		Value.GoVersion, Value.Reproducible)

	Test(t, &Program{},
		ThatGridedit("-version").WritesStdout(Value.Version+"\n"),
		ThatGridedit("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),
		ThatGridedit("-buildinfo").WritesStdout(info),
		ThatGridedit("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatGridedit().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func buildInfo(bi *debug.BuildInfo) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func vcsSettings(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func version(override string, bi *debug.BuildInfo) string {
	return newValue("0.9.0", override, buildInfo(bi)).Version
}

func revision(override string, bi *debug.BuildInfo) string {
	return newValue("0.9.0", override, buildInfo(bi)).Revision
}

func TestVersion(t *testing.T) {
	tt.Test(t, tt.Fn("version", version), tt.Table{
		tt.Args("", nil).Rets("0.9.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("0.9.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.1"}}).
			Rets("0.9.1"),
		tt.Args("", vcsSettings("abcdef0123456789", "2026-03-14T15:09:26Z", "false")).
			Rets("0.9.0-dev.0.20260314150926-abcdef012345"),
		tt.Args("", vcsSettings("abcdef0123456789", "2026-03-14T15:09:26Z", "true")).
			Rets("0.9.0-dev.0.20260314150926-abcdef012345-dirty"),
		tt.Args("", vcsSettings("abcdef0123456789", "Pi Day", "false")).
			Rets("0.9.0-dev.unknown"),
		tt.Args("", vcsSettings("", "2026-03-14T15:09:26Z", "false")).
			Rets("0.9.0-dev.unknown"),
		tt.Args("20260314150926-abcdef012345", nil).
			Rets("0.9.0-dev.0.20260314150926-abcdef012345"),
		tt.Args("garbage", nil).Rets("0.9.0-dev.unknown"),
	})
}

func TestRevision(t *testing.T) {
	tt.Test(t, tt.Fn("revision", revision), tt.Table{
		tt.Args("", nil).Rets(""),
		tt.Args("", vcsSettings("abcdef0123456789", "2026-03-14T15:09:26Z", "false")).
			Rets("abcdef012345"),
		tt.Args("20260314150926-abcdef012345", nil).Rets("abcdef012345"),
	})
}
