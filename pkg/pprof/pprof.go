// Package pprof implements the subprogram that profiles the rest of gridedit.
package pprof

import (
	"os"
	"runtime/pprof"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/prog"
)

// Program adds support for the -cpuprofile and -allocsprofile flags. It never
// runs by itself; it starts profiling and lets the next program run, writing
// the profiles when that program finishes.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "write memory allocation profile to file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if p.cpuProfile != "" {
		if cleanup := startCPUProfile(fds, p.cpuProfile); cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}
	if p.allocsProfile != "" {
		if cleanup := prepareAllocsProfile(fds, p.allocsProfile); cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}
	return prog.NextProgram(cleanups...)
}

func startCPUProfile(fds [3]*os.File, name string) func([3]*os.File) {
	f, err := os.Create(name)
	if err == nil {
		err = pprof.StartCPUProfile(f)
		if err != nil {
			f.Close()
		}
	}
	if err != nil {
		diag.Complainf(fds[2], "Warning: cannot create CPU profile: %v", err)
		diag.Complain(fds[2], "Continuing without CPU profiling.")
		return nil
	}
	return func([3]*os.File) {
		pprof.StopCPUProfile()
		f.Close()
	}
}

func prepareAllocsProfile(fds [3]*os.File, name string) func([3]*os.File) {
	f, err := os.Create(name)
	if err != nil {
		diag.Complainf(fds[2], "Warning: cannot create memory allocation profile: %v", err)
		diag.Complain(fds[2], "Continuing without memory allocation profiling.")
		return nil
	}
	return func(fds [3]*os.File) {
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			diag.Complainf(fds[2], "Warning: cannot write memory allocation profile: %v", err)
		}
		f.Close()
	}
}
