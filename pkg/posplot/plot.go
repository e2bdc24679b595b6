// Package posplot computes the forward-propagation tables of a
// proof-of-space plot: seven tables deterministically derived from a
// 256-bit plot identifier, each built by matching and hashing adjacent
// bucket pairs of the previous one.
package posplot

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/cespare/xxhash/v2"

	"posplot/internal/core"
	"posplot/internal/forward"
	"posplot/internal/sorted"
)

// Config controls one forward pass.
type Config struct {
	// ID is the 256-bit plot identifier seeding table 1.
	ID [core.IDSize]byte

	// Blocks is the number of table-1 keystream blocks to generate
	// (16 entries each). Zero means the full address space implied by K.
	Blocks uint64

	// Workers is the matcher/generator pool size. Zero means GOMAXPROCS.
	Workers int

	// TempDir, when set, backs the per-table sorted runs with on-disk
	// stores under that directory instead of memory.
	TempDir string

	// Metrics, when set, receives per-table counters.
	Metrics *Metrics

	// Progress enables console progress output for the table-1 drive.
	Progress bool
}

// TableStats describes one produced table.
type TableStats struct {
	Table   int
	Entries uint64
	// Matches is the number of matched pairs that produced this table's
	// entries (equal to Entries for tables 2..7, zero for table 1).
	Matches uint64
	// Checksum is an order-insensitive digest of the table's entries,
	// reproducible across runs and worker counts.
	Checksum uint64
}

// tableRun is a sorted run serving as both the output sink of one table
// and the input stream of the next transition.
type tableRun interface {
	forward.EntryStream
	forward.EntrySink
	Len() uint64
	Close() error
}

// ForwardPropagate computes all seven tables for cfg and returns their
// stats. Intermediate runs are released as soon as the next table is
// built.
func ForwardPropagate(cfg Config) ([]TableStats, error) {
	blocks := cfg.Blocks
	if blocks == 0 {
		blocks = forward.F1TotalBlocks
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	newRun := func(table int) (tableRun, error) {
		if cfg.TempDir == "" {
			return sorted.NewRun(), nil
		}
		return sorted.NewDiskRun(filepath.Join(cfg.TempDir, fmt.Sprintf("table%d", table)))
	}

	targets := core.NewTargets()
	stats := make([]TableStats, 0, core.NumTables)

	prev, err := newRun(1)
	if err != nil {
		return nil, err
	}
	defer func() { prev.Close() }()

	sink := newChecksumSink(prev)
	entries, err := forward.ComputeF1(&cfg.ID, blocks, workers, sink, cfg.Progress)
	if err != nil {
		return nil, err
	}
	cfg.Metrics.addEntries(1, entries)
	stats = append(stats, TableStats{Table: 1, Entries: entries, Checksum: sink.sum})
	log.Infof("table 1: %d entries", entries)

	for t := 2; t <= core.NumTables; t++ {
		next, err := newRun(t)
		if err != nil {
			return nil, err
		}
		sink := newChecksumSink(next)
		matches, err := forward.ComputeMatches(t, workers, targets, prev, sink)
		if err != nil {
			next.Close()
			return nil, err
		}
		cfg.Metrics.addEntries(t, matches)
		cfg.Metrics.addMatches(t, matches)
		stats = append(stats, TableStats{Table: t, Entries: matches, Matches: matches, Checksum: sink.sum})
		log.Infof("table %d: %d matches", t, matches)

		prev.Close()
		prev = next
	}
	return stats, nil
}

// checksumSink forwards entries to a sink while folding an
// order-insensitive digest: the wrapping sum of each entry's xxhash64 over
// its serialized form. Summation commutes, so the digest is stable under
// the pipeline's cross-worker permutation.
type checksumSink struct {
	dst forward.EntrySink
	buf []byte
	sum uint64
}

func newChecksumSink(dst forward.EntrySink) *checksumSink {
	return &checksumSink{dst: dst}
}

func (c *checksumSink) Add(e core.Entry) {
	c.buf = sorted.AppendEntry(c.buf[:0], e)
	c.sum += xxhash.Sum64(c.buf)
	c.dst.Add(e)
}

func (c *checksumSink) Finish() {
	c.dst.Finish()
}
