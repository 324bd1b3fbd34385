package store

import (
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"
	. "gridedit.dev/pkg/store/storedefs"
)

const bucketRun = "run"

func init() {
	initDB["initialize run history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRun))
		return err
	}
}

// AddRun adds a new run to the run history. The Seq field of r is ignored.
func (s *dbStore) AddRun(r Run) (int, error) {
	value, err := json.Marshal(r)
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	logger.Printf("added run %d on %s", seq, r.File)
	return int(seq), err
}

// DelRun deletes a run history item with the given sequence number.
func (s *dbStore) DelRun(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Run queries the run history item with the specified sequence number.
func (s *dbStore) Run(seq int) (Run, error) {
	var r Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingRun
		}
		var err error
		r, err = unmarshalRun(seq, v)
		return err
	})
	return r, err
}

// Runs returns all runs within the specified range, in the order they were
// added.
func (s *dbStore) Runs(from, upto int) ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			r, err := unmarshalRun(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			runs = append(runs, r)
		}
		return nil
	})
	return runs, err
}

// LastRun finds the most recent run on the given file.
func (s *dbStore) LastRun(file string) (Run, error) {
	var r Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRun))
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			candidate, err := unmarshalRun(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			if candidate.File == file {
				r = candidate
				return nil
			}
		}
		return ErrNoMatchingRun
	})
	return r, err
}

func unmarshalRun(seq int, v []byte) (Run, error) {
	var r Run
	err := json.Unmarshal(v, &r)
	r.Seq = seq
	return r, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
