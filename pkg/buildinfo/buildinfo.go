// Package buildinfo contains build information.
//
// Some of the information can be overridden when building gridedit, by
// passing -ldflags "-X gridedit.dev/pkg/buildinfo.VCSOverride=..." to go
// build.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gridedit.dev/pkg/prog"
)

// VersionBase identifies the version of gridedit. On development commits, it
// identifies the next release.
const VersionBase = "0.3.0"

// VCSOverride may be set during compilation to "time-commit" (e.g.
// "20240101000000-0123456789ab") for constructing a development version
// when the VCS information is not available from the Go toolchain.
var VCSOverride string

// Reproducible identifies whether the build is reproducible. It may be set to
// "true" during compilation.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	Revision     string `json:"revision,omitempty"`
	Reproducible bool   `json:"reproducible"`
	GoVersion    string `json:"goversion"`
}

// Value contains all the build information.
var Value = newValue(VersionBase, VCSOverride, debug.ReadBuildInfo)

func newValue(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) Type {
	vcs := readVCS(vcsOverride, readBuildInfo)
	return Type{
		Version:      vcs.version(next),
		Revision:     vcs.revision,
		Reproducible: Reproducible == "true",
		GoVersion:    runtime.Version(),
	}
}

// VCS information of the build. The zero value means unknown.
type vcsInfo struct {
	// Version of the main module if it is known, without the "v" prefix.
	module   string
	revision string
	time     time.Time
	modified bool
}

func readVCS(override string, readBuildInfo func() (*debug.BuildInfo, bool)) vcsInfo {
	if override != "" {
		// "time-commit"
		ts, rev, _ := strings.Cut(override, "-")
		t, err := time.Parse(pseudoTimeFormat, ts)
		if err != nil {
			return vcsInfo{}
		}
		return vcsInfo{revision: rev, time: t}
	}
	bi, ok := readBuildInfo()
	if !ok {
		return vcsInfo{}
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return vcsInfo{module: strings.TrimPrefix(v, "v")}
	}
	var info vcsInfo
	var rawTime string
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.revision = setting.Value
		case "vcs.time":
			rawTime = setting.Value
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}
	if len(info.revision) > 12 {
		info.revision = info.revision[:12]
	}
	t, err := time.Parse(time.RFC3339Nano, rawTime)
	if info.revision == "" || err != nil {
		return vcsInfo{}
	}
	info.time = t
	return info
}

const pseudoTimeFormat = "20060102150405"

// Returns the version string, in the same format as Go's pseudo versions when
// built from a VCS checkout.
func (v vcsInfo) version(next string) string {
	switch {
	case v.module != "":
		return v.module
	case v.revision == "":
		return next + "-dev.unknown"
	}
	s := fmt.Sprintf("%s-dev.0.%s-%s",
		next, v.time.UTC().Format(pseudoTimeFormat), v.revision)
	if v.modified {
		s += "-dirty"
	}
	return s
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			if Value.Revision != "" {
				fmt.Fprintln(fds[1], "Revision:", Value.Revision)
			}
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", Value.Reproducible)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.NextProgram()
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
