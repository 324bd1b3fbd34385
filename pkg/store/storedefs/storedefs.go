// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoMatchingRun is the error returned when a query for a single run
// completes with no result.
var ErrNoMatchingRun = errors.New("no matching run")

// Store is an interface satisfied by the storage service.
type Store interface {
	AddRun(r Run) (int, error)
	DelRun(seq int) error
	Run(seq int) (Run, error)
	Runs(from, upto int) ([]Run, error)
	LastRun(file string) (Run, error)
}

// Status is the outcome of a run.
type Status string

// Possible values of Status.
const (
	// The whole script was executed and the table written.
	StatusOK Status = "ok"
	// The script stopped at an invalid selection; the table was written.
	StatusHalted Status = "halted"
	// The script failed; the table was not written.
	StatusFailed Status = "failed"
)

// Run is an entry in the run history.
type Run struct {
	Seq    int       `json:"-"`
	Time   time.Time `json:"time"`
	File   string    `json:"file"`
	Script string    `json:"script"`
	Status Status    `json:"status"`
}
