// Package history implements the subprogram that lists recorded runs.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"gridedit.dev/pkg/fsutil"
	"gridedit.dev/pkg/prog"
	"gridedit.dev/pkg/rc"
	"gridedit.dev/pkg/store"
	"gridedit.dev/pkg/store/storedefs"
)

var errNoDB = errors.New("no database to read history from; use -db or set db in the rc file")

// Program is the history subprogram.
type Program struct {
	run, last bool
	forget    int
	json      *bool
	db, rc    *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "history", false,
		"list the runs recorded in the database, optionally only those on FILE")
	fs.BoolVar(&p.last, "last", false,
		"with -history FILE, show only the most recent run on FILE")
	fs.IntVar(&p.forget, "forget", 0,
		"with -history, delete the run with sequence number `seq`")
	p.json = fs.JSON()
	p.db = fs.DB()
	p.rc = fs.RC()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.NextProgram()
	}
	switch {
	case len(args) > 1:
		return prog.BadUsage("-history takes at most one argument, FILE")
	case p.last && len(args) == 0:
		return prog.BadUsage("-last needs the FILE argument")
	case p.forget != 0 && (len(args) > 0 || p.last):
		return prog.BadUsage("-forget cannot be combined with FILE or -last")
	}
	db := *p.db
	if db == "" {
		cfg, err := rc.Load(*p.rc)
		if err != nil {
			return err
		}
		db = cfg.DB
	}
	if db == "" {
		return errNoDB
	}

	st, err := store.NewStore(db)
	if err != nil {
		return err
	}
	defer st.Close()

	var runs []storedefs.Run
	switch {
	case p.forget != 0:
		return forget(fds, st, p.forget)
	case p.last:
		r, err := st.LastRun(absPath(args[0]))
		if err == nil {
			runs = []storedefs.Run{r}
		} else if err != storedefs.ErrNoMatchingRun {
			return err
		}
	default:
		runs, err = st.Runs(0, math.MaxInt)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			runs = onFile(runs, absPath(args[0]))
		}
	}

	if *p.json {
		return json.NewEncoder(fds[1]).Encode(toJSON(runs))
	}
	return writeTable(fds[1], runs)
}

// Deletes a run after showing what it was.
func forget(fds [3]*os.File, st storedefs.Store, seq int) error {
	r, err := st.Run(seq)
	if err == storedefs.ErrNoMatchingRun {
		return fmt.Errorf("no run with sequence number %d", seq)
	} else if err != nil {
		return err
	}
	if err := st.DelRun(seq); err != nil {
		return err
	}
	fmt.Fprintf(fds[1], "forgot run %d on %s: %s\n",
		seq, fsutil.TildeAbbr(r.File), r.Script)
	return nil
}

// Runs are recorded with absolute paths.
func absPath(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return file
}

func onFile(runs []storedefs.Run, file string) []storedefs.Run {
	var filtered []storedefs.Run
	for _, r := range runs {
		if r.File == file {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

type runInJSON struct {
	Seq int `json:"seq"`
	storedefs.Run
}

func toJSON(runs []storedefs.Run) []runInJSON {
	out := make([]runInJSON, len(runs))
	for i, r := range runs {
		out[i] = runInJSON{r.Seq, r}
	}
	return out
}

func writeTable(f *os.File, runs []storedefs.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(f, "no runs recorded")
		return nil
	}
	tw := tablewriter.NewTable(f)
	tw.Header("Seq", "Time", "Status", "File", "Script")
	for _, r := range runs {
		err := tw.Append([]string{
			strconv.Itoa(r.Seq), r.Time.Local().Format(time.DateTime),
			string(r.Status), fsutil.TildeAbbr(r.File), r.Script})
		if err != nil {
			return err
		}
	}
	return tw.Render()
}
