package store_test

import (
	"path/filepath"
	"testing"

	"gridedit.dev/pkg/store"
	"gridedit.dev/pkg/store/storedefs"
	"gridedit.dev/pkg/store/storetest"
	"gridedit.dev/pkg/testutil"
)

func TestRuns(t *testing.T) {
	storetest.TestRuns(t, store.MustTempStore(t))
}

func TestReopen(t *testing.T) {
	name := filepath.Join(testutil.TempDir(t), "db")
	st, err := store.NewStore(name)
	if err != nil {
		t.Fatal(err)
	}
	st.AddRun(storedefs.Run{File: "x", Script: "clear"})
	st.Close()

	st, err = store.NewStore(name)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	r, err := st.LastRun("x")
	if err != nil || r.Seq != 1 || r.Script != "clear" {
		t.Errorf("LastRun after reopening -> %v, %v", r, err)
	}
}

func TestNewStore_Error(t *testing.T) {
	_, err := store.NewStore(filepath.Join(testutil.TempDir(t), "no", "such", "dir"))
	if err == nil {
		t.Errorf("NewStore in nonexistent directory -> nil error")
	}
}
