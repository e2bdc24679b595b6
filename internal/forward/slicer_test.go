package forward

import (
	"testing"

	"github.com/stretchr/testify/require"

	"posplot/internal/core"
)

func entryInBucket(bucket uint64, residue uint64) core.Entry {
	return core.Entry{Y: bucket*core.BC + residue}
}

func feedAll(t *testing.T, s *slicer, entries []core.Entry) []matchJob {
	t.Helper()
	var jobs []matchJob
	var err error
	for _, e := range entries {
		jobs, err = s.feed(e, jobs)
		require.NoError(t, err)
	}
	return jobs
}

func TestSlicerEmitsAdjacentPairs(t *testing.T) {
	var s slicer
	entries := []core.Entry{
		entryInBucket(0, 1),
		entryInBucket(0, 5),
		entryInBucket(1, 2),
		entryInBucket(1, 3),
		entryInBucket(1, 9),
		entryInBucket(2, 0),
	}
	jobs := feedAll(t, &s, entries)

	// Rotating into bucket 2 completes the (bucket0, bucket1) pair.
	require.Len(t, jobs, 1)
	require.Equal(t, uint64(0), jobs[0].leftOffset)
	require.Len(t, jobs[0].left, 2)
	require.Len(t, jobs[0].right, 3)

	// The (bucket1, bucket2) pair is still in the window.
	tail, ok := s.tail()
	require.True(t, ok)
	require.Equal(t, uint64(2), tail.leftOffset)
	require.Len(t, tail.left, 3)
	require.Len(t, tail.right, 1)
}

func TestSlicerSkipsNonAdjacentBuckets(t *testing.T) {
	var s slicer
	entries := []core.Entry{
		entryInBucket(0, 1),
		entryInBucket(3, 1), // gap: no pair
		entryInBucket(4, 1),
		entryInBucket(9, 1), // completes (3,4)
	}
	jobs := feedAll(t, &s, entries)
	require.Len(t, jobs, 1)
	require.Equal(t, uint64(1), jobs[0].leftOffset)
	require.Equal(t, uint64(3*core.BC+1), jobs[0].left[0].Y)

	_, ok := s.tail()
	require.False(t, ok, "buckets 4 and 9 are not adjacent")
}

func TestSlicerOffsetsAccumulate(t *testing.T) {
	var s slicer
	var entries []core.Entry
	sizes := []int{4, 2, 5, 1}
	for b, n := range sizes {
		for i := 0; i < n; i++ {
			entries = append(entries, entryInBucket(uint64(b), uint64(i)))
		}
	}
	entries = append(entries, entryInBucket(20, 0))
	jobs := feedAll(t, &s, entries)

	require.Len(t, jobs, 3)
	require.Equal(t, uint64(0), jobs[0].leftOffset) // bucket0 at 0
	require.Equal(t, uint64(4), jobs[1].leftOffset) // bucket1 after 4 entries
	require.Equal(t, uint64(6), jobs[2].leftOffset) // bucket2 after 6
}

func TestSlicerRejectsUnsortedInput(t *testing.T) {
	var s slicer
	jobs := feedAll(t, &s, []core.Entry{entryInBucket(5, 0)})
	_, err := s.feed(entryInBucket(4, 0), jobs)
	require.ErrorIs(t, err, ErrUnsorted)
}

func TestSlicerPreservesBucketOrder(t *testing.T) {
	var s slicer
	entries := []core.Entry{
		entryInBucket(1, 9),
		entryInBucket(1, 3), // within-bucket order is whatever arrived
		entryInBucket(2, 0),
		entryInBucket(3, 0),
	}
	jobs := feedAll(t, &s, entries)
	require.Len(t, jobs, 1)
	require.Equal(t, uint64(core.BC+9), jobs[0].left[0].Y)
	require.Equal(t, uint64(core.BC+3), jobs[0].left[1].Y)
}
