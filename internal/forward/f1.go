package forward

import (
	"fmt"

	"posplot/internal/core"
	"posplot/internal/pool"
	"posplot/internal/util"
)

// F1BlocksPerJob is the number of keystream blocks computed per worker
// job in the table-1 drive.
const F1BlocksPerJob = 4096

// F1TotalBlocks covers the full x address space implied by K.
const F1TotalBlocks = uint64(1) << (core.K - 4)

// ComputeF1 generates the first table for the given plot id across
// numBlocks keystream blocks and finalizes out. The block range is split
// into fixed-size jobs fanned out to workers, each holding a private
// generator; results funnel through a single collector stage because the
// sink is not safe for concurrent writers. Returns the number of entries
// produced.
func ComputeF1(id *[core.IDSize]byte, numBlocks uint64, workers int, out EntrySink, progress bool) (uint64, error) {
	if numBlocks == 0 || numBlocks > F1TotalBlocks {
		return 0, fmt.Errorf("forward: block count %d out of range [1,%d]", numBlocks, F1TotalBlocks)
	}
	if workers < 1 {
		workers = 1
	}

	plog := util.NewProgressLogger(numBlocks, "F1: ", "", progress)
	collect := pool.New(1, workers, func(_ int, batch []core.Entry) {
		for _, e := range batch {
			out.Add(e)
		}
		plog.LogN(uint64(len(batch)) / core.EntriesPerBlock)
	})

	generators := make([]*core.F1, workers)
	for w := range generators {
		generators[w] = core.NewF1(id)
	}
	gen := pool.New(workers, workers, func(w int, job uint64) {
		f1 := generators[w]
		first := job * F1BlocksPerJob
		count := uint64(F1BlocksPerJob)
		if first+count > numBlocks {
			count = numBlocks - first
		}
		batch := make([]core.Entry, count*core.EntriesPerBlock)
		for i := uint64(0); i < count; i++ {
			f1.ComputeBlock(first+i, batch[i*core.EntriesPerBlock:])
		}
		collect.Submit(batch)
	})

	numJobs := (numBlocks + F1BlocksPerJob - 1) / F1BlocksPerJob
	for job := uint64(0); job < numJobs; job++ {
		gen.Submit(job)
	}
	gen.Drain()
	collect.Drain()
	plog.Finalize()

	out.Finish()
	log.Debugf("F1 complete: %d entries from %d blocks", numBlocks*core.EntriesPerBlock, numBlocks)
	return numBlocks * core.EntriesPerBlock, nil
}
