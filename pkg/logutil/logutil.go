// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	file    *os.File
	loggers []*log.Logger
	lock    sync.Mutex
)

// GetLogger gets a logger with a prefix. All loggers share the same output,
// which discards everything until SetOutput or SetOutputFile is called.
func GetLogger(prefix string) *log.Logger {
	lock.Lock()
	defer lock.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	closeFile()
	setOutput(newout)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is opened for appending. If fname is empty, logs are
// discarded.
func SetOutputFile(fname string) error {
	lock.Lock()
	defer lock.Unlock()
	closeFile()
	if fname == "" {
		setOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	file = f
	setOutput(f)
	return nil
}

func setOutput(newout io.Writer) {
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
}
