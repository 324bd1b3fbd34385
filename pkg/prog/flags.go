package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] with flags shared by several subprograms.
// The shared flags are registered on first use.
type FlagSet struct {
	*flag.FlagSet
	log  *string
	json *bool
	db   *string
	rc   *string
}

// Log returns a pointer to the value of the -log flag, which is registered for
// all programs.
func (fs *FlagSet) Log() *string {
	if fs.log == nil {
		var log string
		fs.StringVar(&log, "log", "", "a file to write debug log to")
		fs.log = &log
	}
	return fs.log
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo, -check, -history or -version in JSON")
		fs.json = &json
	}
	return fs.json
}

// DB returns a pointer to the value of the -db flag.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "",
			"path to the database recording the history of runs")
		fs.db = &db
	}
	return fs.db
}

// RC returns a pointer to the value of the -rc flag.
func (fs *FlagSet) RC() *string {
	if fs.rc == nil {
		var rc string
		fs.StringVar(&rc, "rc", "",
			"path to the configuration file (default $XDG_CONFIG_HOME/gridedit/rc.yaml)")
		fs.rc = &rc
	}
	return fs.rc
}
