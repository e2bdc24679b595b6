// Package sorted implements the sorted-run contracts the forward pipeline
// reads from and writes to: a sink that accepts entries in arbitrary order
// and, once finished, a stream that yields them in non-decreasing bucket
// order. A memory-backed and a pebble-backed variant are provided.
//
// Runs are single-writer: Add is not safe for concurrent callers, which is
// why the pipeline funnels all production through one stage.
package sorted

import (
	"sort"

	"posplot/internal/core"
)

// ReadBatch is the number of entries handed to a Read callback at a time.
const ReadBatch = 1 << 14

// Run is an in-memory sorted run.
type Run struct {
	entries []core.Entry
	sealed  bool
}

// NewRun returns an empty in-memory run.
func NewRun() *Run {
	return &Run{}
}

// Add appends one entry. Must not be called after Finish.
func (r *Run) Add(e core.Entry) {
	if r.sealed {
		panic("sorted: Add after Finish")
	}
	r.entries = append(r.entries, e)
}

// Finish seals the run and sorts it by fingerprint. Insertion order is
// preserved among equal fingerprints.
func (r *Run) Finish() {
	if r.sealed {
		panic("sorted: Finish called twice")
	}
	r.sealed = true
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Y < r.entries[j].Y
	})
}

// Len returns the number of entries in the run.
func (r *Run) Len() uint64 { return uint64(len(r.entries)) }

// Read streams the sorted entries in batches. Only valid after Finish.
// Read stops and returns the first error from fn.
func (r *Run) Read(fn func(batch []core.Entry) error) error {
	if !r.sealed {
		panic("sorted: Read before Finish")
	}
	for off := 0; off < len(r.entries); off += ReadBatch {
		end := off + ReadBatch
		if end > len(r.entries) {
			end = len(r.entries)
		}
		if err := fn(r.entries[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the run's memory.
func (r *Run) Close() error {
	r.entries = nil
	return nil
}
