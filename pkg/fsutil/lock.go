// Package fsutil provides filesystem utilities.
package fsutil

import (
	"fmt"
	"os"
)

// LockedFile is a file opened for reading and writing and held under an
// exclusive lock. On some systems the lock also blocks access through other
// handles, even from the same process, so all reads and writes must go
// through the LockedFile until it is unlocked.
type LockedFile struct {
	*os.File
}

// Lock opens the named file for reading and writing and takes an exclusive
// lock on it, blocking until the lock is available. If the file cannot be
// opened, the error is the *fs.PathError from os.OpenFile.
//
// The lock is advisory on Unix: it serializes gridedit runs on the same file
// but does not prevent other programs from writing it.
func Lock(name string) (*LockedFile, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot lock %s: %w", name, err)
	}
	return &LockedFile{f}, nil
}

// Unlock releases the lock and closes the file.
func (f *LockedFile) Unlock() error {
	err := unlockFile(f.File)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
