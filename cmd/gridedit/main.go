// Gridedit edits plain-text tables with scripts of selection, structural and
// aggregate commands:
//
//	gridedit [-d DELIMS] SCRIPT FILE
//
// For example, "gridedit '[1,1,2,2];sum [1,3]' t.txt" writes the sum of the
// top-left 2x2 block of t.txt to the third cell of the first row.
package main

import (
	"os"

	"gridedit.dev/pkg/buildinfo"
	"gridedit.dev/pkg/edit"
	"gridedit.dev/pkg/history"
	"gridedit.dev/pkg/lsp"
	"gridedit.dev/pkg/pprof"
	"gridedit.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &history.Program{},
			&edit.Program{})))
}
