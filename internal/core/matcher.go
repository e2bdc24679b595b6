package core

// rmapSlot records, for one right-bucket residue, the position of its first
// occurrence and the number of occurrences. Entries sharing a residue are
// contiguous in a sorted bucket, so (first, count) recovers them all.
type rmapSlot struct {
	pos   uint16
	count uint16
}

// Matcher finds all matching pairs between two adjacent buckets. It keeps a
// residue map as reusable scratch, reset (not reallocated) between calls;
// this reuse is a performance requirement, so construct one matcher per
// worker and reuse it across jobs. Not safe for concurrent use.
type Matcher struct {
	targets *Targets
	rmap    []rmapSlot
	clean   []uint16
}

// NewMatcher constructs a matcher sharing the given target table.
func NewMatcher(targets *Targets) *Matcher {
	return &Matcher{
		targets: targets,
		rmap:    make([]rmapSlot, BC),
		clean:   make([]uint16, 0, BC),
	}
}

// Matches returns every pair (l, r) from bucketL and bucketR satisfying the
// matching relation, where bucketR's bucket index is bucketL's plus one.
// leftOffset is the global position of bucketL's first entry; emitted
// matches carry Pos = leftOffset + posL and Off = posR + (|L| - posL).
//
// Pairs are emitted left-bucket-major, then in target-candidate order, then
// in right-bucket occurrence order. Either bucket empty yields no matches.
func (m *Matcher) Matches(leftOffset uint64, bucketL, bucketR []Entry) []Match {
	if len(bucketL) == 0 || len(bucketR) == 0 {
		return nil
	}
	parity := uint16((bucketL[0].Y / BC) % 2)

	// Reset only the slots dirtied by the previous call.
	for _, r := range m.clean {
		m.rmap[r].count = 0
	}
	m.clean = m.clean[:0]

	base := (bucketR[0].Y / BC) * BC
	for posR, e := range bucketR {
		r := uint16(e.Y - base)
		if m.rmap[r].count == 0 {
			m.rmap[r].pos = uint16(posR)
		}
		m.rmap[r].count++
		m.clean = append(m.clean, r)
	}

	var out []Match
	leftBase := base - BC
	for posL, e := range bucketL {
		r := uint16(e.Y - leftBase)
		targets := m.targets.Lookup(parity, r)
		for _, rt := range targets {
			slot := m.rmap[rt]
			for j := uint16(0); j < slot.count; j++ {
				posR := slot.pos + j
				out = append(out, Match{
					Left:  e,
					Right: bucketR[posR],
					Pos:   uint32(leftOffset) + uint32(posL),
					Off:   posR + uint16(len(bucketL)-posL),
				})
			}
		}
	}
	return out
}
