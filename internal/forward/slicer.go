package forward

import (
	"errors"
	"fmt"

	"posplot/internal/core"
)

// ErrUnsorted reports an input stream violating the non-decreasing bucket
// order precondition. The slicer's window is inconsistent once this
// happens, so the drive aborts without recovery.
var ErrUnsorted = errors.New("forward: input not sorted")

// matchJob carries one adjacent bucket pair to the matcher pool. The left
// bucket's index is the right bucket's minus one; leftOffset is the global
// position of the left bucket's first entry. Both buckets stay referenced
// by the job until matching completes.
type matchJob struct {
	leftOffset uint64
	left       []core.Entry
	right      []core.Entry
}

// slicer accumulates the incoming sorted stream into buckets using a
// two-slot sliding window: slot 0 is the bucket currently being filled,
// slot 1 the previous one. Whenever the stream moves to a new bucket index
// and the two completed buckets are index-adjacent, a match job for them is
// emitted. The slicer is single-consumer state; only the read stage
// touches it.
type slicer struct {
	index  [2]uint64
	offset [2]uint64
	bucket [2][]core.Entry
}

// feed consumes one entry, appending any completed adjacent bucket pair to
// jobs and returning the extended slice.
func (s *slicer) feed(e core.Entry, jobs []matchJob) ([]matchJob, error) {
	index := e.Bucket()
	if index < s.index[0] {
		return jobs, fmt.Errorf("%w: bucket %d after bucket %d", ErrUnsorted, index, s.index[0])
	}
	if index > s.index[0] {
		if job, ok := s.rotate(index); ok {
			jobs = append(jobs, job)
		}
	}
	s.bucket[0] = append(s.bucket[0], e)
	return jobs, nil
}

// rotate closes the current bucket and starts one at index, returning the
// completed adjacent pair if there is one.
func (s *slicer) rotate(index uint64) (matchJob, bool) {
	var job matchJob
	emit := s.index[1]+1 == s.index[0]
	if emit {
		job = matchJob{
			leftOffset: s.offset[1],
			left:       s.bucket[1],
			right:      s.bucket[0],
		}
	}
	s.index[1] = s.index[0]
	s.index[0] = index
	s.offset[1] = s.offset[0]
	s.offset[0] += uint64(len(s.bucket[0]))
	s.bucket[1] = s.bucket[0]
	s.bucket[0] = nil
	return job, emit
}

// tail returns the final adjacent pair still held in the window once the
// stream has ended, if any.
func (s *slicer) tail() (matchJob, bool) {
	if s.index[1]+1 != s.index[0] {
		return matchJob{}, false
	}
	return matchJob{
		leftOffset: s.offset[1],
		left:       s.bucket[1],
		right:      s.bucket[0],
	}, true
}
