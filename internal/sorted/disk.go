package sorted

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"

	"posplot/internal/core"
)

// diskFlushEvery bounds how many entries accumulate in a pebble batch
// before it is committed.
const diskFlushEvery = 1 << 15

var writeOptions = pebble.WriteOptions{Sync: false}

// DiskRun is a pebble-backed sorted run. Entries are keyed by fingerprint
// (big-endian) plus an insertion sequence number, so iterating the store in
// key order yields the entries in non-decreasing bucket order while
// preserving insertion order among equal fingerprints.
type DiskRun struct {
	db     *pebble.DB
	batch  *pebble.Batch
	seq    uint64
	count  uint64
	sealed bool
}

// NewDiskRun opens a pebble store at dir and returns an empty run.
func NewDiskRun(dir string) (*DiskRun, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("sorted: open pebble store: %w", err)
	}
	return &DiskRun{db: db, batch: db.NewBatch()}, nil
}

// Add appends one entry. Must not be called after Finish.
func (r *DiskRun) Add(e core.Entry) {
	if r.sealed {
		panic("sorted: Add after Finish")
	}
	var key [16]byte
	binary.BigEndian.PutUint64(key[0:], e.Y)
	binary.BigEndian.PutUint64(key[8:], r.seq)
	r.seq++
	r.count++

	if err := r.batch.Set(key[:], AppendEntry(nil, e), &writeOptions); err != nil {
		panic("sorted: batch set: " + err.Error())
	}
	if r.batch.Count() >= diskFlushEvery {
		r.commit()
	}
}

// Finish commits outstanding writes and seals the run.
func (r *DiskRun) Finish() {
	if r.sealed {
		panic("sorted: Finish called twice")
	}
	r.commit()
	r.sealed = true
}

// Len returns the number of entries in the run.
func (r *DiskRun) Len() uint64 { return r.count }

// Read streams the entries in key order in batches. Only valid after
// Finish.
func (r *DiskRun) Read(fn func(batch []core.Entry) error) error {
	if !r.sealed {
		panic("sorted: Read before Finish")
	}
	it, err := r.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("sorted: iterator: %w", err)
	}
	defer it.Close()

	batch := make([]core.Entry, 0, ReadBatch)
	for it.First(); it.Valid(); it.Next() {
		e, err := DecodeEntry(it.Value())
		if err != nil {
			return err
		}
		batch = append(batch, e)
		if len(batch) == ReadBatch {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return err
		}
	}
	return it.Error()
}

// Close releases the underlying store.
func (r *DiskRun) Close() error {
	if r.batch != nil {
		r.batch.Close()
		r.batch = nil
	}
	return r.db.Close()
}

func (r *DiskRun) commit() {
	if r.batch.Count() == 0 {
		return
	}
	if err := r.db.Apply(r.batch, &writeOptions); err != nil {
		panic("sorted: batch apply: " + err.Error())
	}
	r.batch.Close()
	r.batch = r.db.NewBatch()
}
