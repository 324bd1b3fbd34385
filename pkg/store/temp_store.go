package store

import (
	"path/filepath"

	"gridedit.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory,
// which is closed and removed when the test finishes. It panics if the Store
// cannot be created.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
