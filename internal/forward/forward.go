// Package forward drives one forward-propagation pass: the table-1
// keystream generation and the per-table slice → match → hash → sort
// transitions.
package forward

import "posplot/internal/core"

// EntryStream yields entries in non-decreasing bucket order. Violating
// that order is a programming error in the stream and aborts the drive
// with ErrUnsorted.
type EntryStream interface {
	// Read calls fn with consecutive batches until the stream is exhausted
	// or fn returns an error, which Read propagates.
	Read(fn func(batch []core.Entry) error) error
}

// EntrySink accepts newly produced entries. Implementations are not
// assumed safe for concurrent callers; the pipeline serializes all Add
// calls through a single stage. Finish seals the sink and is called
// exactly once after all production completes.
type EntrySink interface {
	Add(e core.Entry)
	Finish()
}
