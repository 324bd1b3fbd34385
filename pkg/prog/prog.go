// Package prog supports building testable, composable programs.
//
// The main abstraction of this package is the [Program] interface, which can
// be combined using [Composite] and run with [Run].
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gridedit.dev/pkg/logutil"
)

// Program represents a program or subprogram.
type Program interface {
	// RegisterFlags registers the flags this program accepts. It is called
	// before the command-line arguments are parsed.
	RegisterFlags(fs *FlagSet)
	// Run runs the program with the non-flag arguments. It may return an
	// error built with NextProgram to signal that the program did not run;
	// other errors are interpreted as in Run.
	Run(fds [3]*os.File, args []string) error
}

// NextProgram returns a special error that may be returned by Program.Run when
// the program should not run, given the flags. Composite uses it to try the
// next program. The cleanup functions, if any, are called after the next
// program has run.
func NextProgram(cleanups ...func([3]*os.File)) error {
	return nextProgramError{cleanups}
}

type nextProgramError struct{ cleanups []func([3]*os.File) }

func (e nextProgramError) Error() string {
	return "internal error: no suitable subprogram"
}

// IsNextProgram reports whether err was built with NextProgram.
func IsNextProgram(err error) bool {
	_, ok := err.(nextProgramError)
	return ok
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: gridedit [flags] SCRIPT FILE")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// Run parses command-line flags and runs the program. It returns the exit
// status of the program.
//
// If p.Run returns an error built with BadUsage, the message is printed,
// followed by the usage. If it returns an error built with Exit, the exit
// status is returned without printing anything. Any other error is printed
// and results in exit status 2.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet("gridedit", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	pfs := &FlagSet{FlagSet: fs}
	log := pfs.Log()
	var help bool
	fs.BoolVar(&help, "help", false, "show usage help and quit")
	p.RegisterFlags(pfs)

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. -help is defined, so this means
			// -h has been requested; treat it as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if *log != "" {
		err = logutil.SetOutputFile(*log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if np, ok := err.(nextProgramError); ok {
		runCleanups(np.cleanups, fds)
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return an error built with
// NextProgram. All the programs share the same flag set.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(fs *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(fs)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	var cleanups []func([3]*os.File)
	for _, p := range cp {
		err := p.Run(fds, args)
		np, ok := err.(nextProgramError)
		if !ok {
			runCleanups(cleanups, fds)
			return err
		}
		cleanups = append(cleanups, np.cleanups...)
	}
	// If we have reached here, all subprograms have returned NextProgram
	return NextProgram(cleanups...)
}

// Runs cleanups in reverse order.
func runCleanups(cleanups []func([3]*os.File), fds [3]*os.File) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](fds)
	}
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
