package forward

import (
	"fmt"
	"sync/atomic"

	"posplot/internal/core"
	"posplot/internal/pool"
)

// ComputeMatches drives one table transition: it reads table-1..6 entries
// from the sorted stream, slices them into adjacent bucket pairs, matches
// the pairs across a worker pool, hashes every match with the table
// evaluator and hands the produced entries to out, which is finalized once
// hashing drains. table is the output table index (2..7).
//
// Matches flow to the hashing stage in each matcher worker's discovery
// order but with no global order across workers, so the produced entry
// order is a permutation that the downstream sorted sink canonicalizes.
// Returns the total number of matches found.
func ComputeMatches(table, workers int, targets *core.Targets, in EntryStream, out EntrySink) (uint64, error) {
	fx, err := core.NewFx(table)
	if err != nil {
		return 0, err
	}
	if workers < 1 {
		workers = 1
	}

	// Single hashing stage: the sink is not safe for concurrent writers.
	hash := pool.New(1, workers, func(_ int, matches []core.Match) {
		for _, match := range matches {
			e := fx.Evaluate(match.Left, match.Right)
			e.Pos = match.Pos
			e.Off = match.Off
			out.Add(e)
		}
	})

	var numFound atomic.Uint64
	matchers := make([]*core.Matcher, workers)
	for w := range matchers {
		matchers[w] = core.NewMatcher(targets)
	}
	match := pool.New(workers, workers, func(w int, jobs []matchJob) {
		m := matchers[w]
		var matches []core.Match
		for _, job := range jobs {
			found := m.Matches(job.leftOffset, job.left, job.right)
			matches = append(matches, found...)
		}
		numFound.Add(uint64(len(matches)))
		hash.Submit(matches)
	})

	var s slicer
	readErr := in.Read(func(batch []core.Entry) error {
		jobs := make([]matchJob, 0, 8)
		var err error
		for _, e := range batch {
			if jobs, err = s.feed(e, jobs); err != nil {
				return err
			}
		}
		match.Submit(jobs)
		return nil
	})

	match.Drain()
	if readErr != nil {
		// The window is inconsistent; drain the stages and abort without
		// finalizing the sink.
		hash.Drain()
		return 0, fmt.Errorf("table %d transition: %w", table, readErr)
	}

	// The last adjacent pair never sees a rotation; match it synchronously.
	if job, ok := s.tail(); ok {
		m := core.NewMatcher(targets)
		matches := m.Matches(job.leftOffset, job.left, job.right)
		numFound.Add(uint64(len(matches)))
		hash.Submit(matches)
	}
	hash.Drain()

	out.Finish()
	log.Debugf("table %d transition complete: %d matches", table, numFound.Load())
	return numFound.Load(), nil
}
