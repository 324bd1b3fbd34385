package edit

import (
	"os"
	"path/filepath"
	"time"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/dump"
	"gridedit.dev/pkg/logutil"
	"gridedit.dev/pkg/prog"
	"gridedit.dev/pkg/rc"
	"gridedit.dev/pkg/script"
	"gridedit.dev/pkg/store"
	"gridedit.dev/pkg/store/storedefs"
	"gridedit.dev/pkg/tabfmt"
)

// Program is the editor subprogram. It is meant to be the last subprogram in
// a prog.Composite, since it always runs.
type Program struct {
	delims      delimsFlag
	check, dump bool

	json        *bool
	db, rc, log *string
}

type delimsFlag struct {
	value string
	set   bool
}

func (f *delimsFlag) String() string { return f.value }

func (f *delimsFlag) Set(s string) error {
	f.value, f.set = s, true
	return nil
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.delims = delimsFlag{}
	fs.Var(&p.delims, "d",
		"delimiter `set`; the first one joins cells when writing (default a single space)")
	fs.BoolVar(&p.check, "check", false,
		"check the script for invalid commands, without touching the file")
	fs.BoolVar(&p.dump, "dump", false, "print the resulting table to stdout")
	p.json = fs.JSON()
	p.db = fs.DB()
	p.rc = fs.RC()
	p.log = fs.Log()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.check {
		if len(args) < 1 || len(args) > 2 {
			return prog.BadUsage("-check needs the SCRIPT argument")
		}
		return check(fds, args[0], *p.json)
	}
	if len(args) != 2 {
		return prog.BadUsage("need exactly two arguments, SCRIPT and FILE")
	}
	code, file := args[0], args[1]

	rcCfg, err := rc.Load(*p.rc)
	if err != nil {
		return err
	}
	if *p.log == "" && rcCfg.Log != "" {
		if err := logutil.SetOutputFile(rcCfg.Log); err != nil {
			diag.Complainf(fds[2], "warning: %v", err)
		}
	}
	cfg := Config{
		Delims: tabfmt.Delims(p.delims.value), File: file, Script: code,
		MaxCellBytes: rcCfg.MaxCellBytes,
		Trace:        func(cmd script.Command) { logger.Println("exec", cmd) },
	}
	if !p.delims.set && rcCfg.Delims != nil {
		cfg.Delims = tabfmt.Delims(*rcCfg.Delims)
	}
	db := *p.db
	if db == "" {
		db = rcCfg.DB
	}

	start := time.Now()
	out, err := Edit(cfg)
	if db != "" {
		record(fds, db, storedefs.Run{
			Time: start, File: absPath(file), Script: code, Status: statusOf(out, err)})
	}
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}
	if out.Halt != nil {
		diag.ShowError(fds[2], out.Halt)
	}
	if p.dump {
		return dump.Write(fds[1], out.Table)
	}
	return nil
}

func statusOf(out *Outcome, err error) storedefs.Status {
	switch {
	case err != nil:
		return storedefs.StatusFailed
	case out.Halt != nil:
		return storedefs.StatusHalted
	default:
		return storedefs.StatusOK
	}
}

// Adds a run to the history in the database. Failures are only warned about.
func record(fds [3]*os.File, db string, r storedefs.Run) {
	st, err := store.NewStore(db)
	if err != nil {
		diag.Complainf(fds[2], "warning: cannot open database: %v", err)
		return
	}
	defer st.Close()
	if _, err := st.AddRun(r); err != nil {
		diag.Complainf(fds[2], "warning: cannot record run: %v", err)
	}
}

// Files are recorded by absolute path, so that runs from different working
// directories are comparable.
func absPath(name string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return name
	}
	return abs
}
