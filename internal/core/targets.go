package core

// Targets is the precomputed bit-target table. For a left entry with local
// bucket residue i and bucket parity p, Targets[p][i] lists the
// ExtraBitsPow residues a matching right entry must have within its own
// bucket. The table is a pure function of B, C and ExtraBitsPow; once
// built it is read-only and safe for unsynchronized concurrent reads.
type Targets struct {
	t [2][BC][ExtraBitsPow]uint16
}

// NewTargets computes the target table. Call once during setup and share
// the result across matchers.
func NewTargets() *Targets {
	tt := &Targets{}
	for parity := 0; parity < 2; parity++ {
		for i := 0; i < BC; i++ {
			indJ := i / C
			for m := 0; m < ExtraBitsPow; m++ {
				yr := ((indJ+m)%B)*C + ((2*m+parity)*(2*m+parity)+i)%C
				tt.t[parity][i][m] = uint16(yr)
			}
		}
	}
	return tt
}

// Lookup returns the candidate target residues for a left-entry residue and
// bucket parity.
func (tt *Targets) Lookup(parity, residue uint16) *[ExtraBitsPow]uint16 {
	return &tt.t[parity][residue]
}
