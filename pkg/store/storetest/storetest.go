// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gridedit.dev/pkg/store/storedefs"
)

var (
	t0 = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	runs = []storedefs.Run{
		{Time: t0, File: "a.txt", Script: "[1,1];set x", Status: storedefs.StatusOK},
		{Time: t0.Add(time.Minute), File: "b.txt", Script: "bogus", Status: storedefs.StatusHalted},
		{Time: t0.Add(2 * time.Minute), File: "a.txt", Script: "sum [1,1]", Status: storedefs.StatusFailed},
	}
)

// TestRuns tests the run history functionality of a Store.
func TestRuns(t *testing.T, store storedefs.Store) {
	t.Helper()

	const startSeq = 1

	// AddRun
	for i, r := range runs {
		wantSeq := startSeq + i
		seq, err := store.AddRun(r)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddRun(%v) -> %v, %v, want %v, nil",
				r, seq, err, wantSeq)
		}
	}

	endSeq := startSeq + len(runs)

	withSeq := func(i int) storedefs.Run {
		r := runs[i]
		r.Seq = startSeq + i
		return r
	}

	// Run
	for i := range runs {
		seq := i + startSeq
		r, err := store.Run(seq)
		if diff := cmp.Diff(withSeq(i), r); diff != "" || err != nil {
			t.Errorf("store.Run(%v) -> error %v, diff (-want +got):\n%s", seq, err, diff)
		}
	}
	if _, err := store.Run(endSeq); err != storedefs.ErrNoMatchingRun {
		t.Errorf("store.Run(%v) -> error %v, want ErrNoMatchingRun", endSeq, err)
	}

	// Runs
	got, err := store.Runs(startSeq+1, endSeq)
	want := []storedefs.Run{withSeq(1), withSeq(2)}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.Runs -> error %v, diff (-want +got):\n%s", err, diff)
	}

	// LastRun
	tests := []struct {
		file    string
		wantRun storedefs.Run
		wantErr error
	}{
		{"a.txt", withSeq(2), nil},
		{"b.txt", withSeq(1), nil},
		{"c.txt", storedefs.Run{}, storedefs.ErrNoMatchingRun},
	}
	for _, tt := range tests {
		r, err := store.LastRun(tt.file)
		if diff := cmp.Diff(tt.wantRun, r); diff != "" || err != tt.wantErr {
			t.Errorf("store.LastRun(%q) -> error %v, want %v, diff (-want +got):\n%s",
				tt.file, err, tt.wantErr, diff)
		}
	}

	// DelRun
	if err := store.DelRun(startSeq); err != nil {
		t.Error("Failed to remove run")
	}
	if r, err := store.Run(startSeq); err != storedefs.ErrNoMatchingRun {
		t.Errorf("Run %v still exists after DelRun: %v", startSeq, r)
	}
	if r, err := store.LastRun("a.txt"); err != nil || r.Seq != startSeq+2 {
		t.Errorf("store.LastRun(a.txt) after DelRun -> %v, %v", r, err)
	}
}
