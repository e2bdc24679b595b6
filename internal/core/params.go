package core

// Fixed proof-of-space parameters. The evaluator hardcodes the size
// parameter K; entry widths below are derived from it.
const (
	// K is the size parameter controlling entry bit widths.
	K = 32

	// ExtraBits is the number of collision-damping bits appended to every
	// fingerprint. ExtraBitsPow is the number of candidate targets the
	// matcher probes per left entry.
	ExtraBits    = 6
	ExtraBitsPow = 1 << ExtraBits

	// B and C are the group constants of the matching relation. All entries
	// sharing floor(y/BC) form one bucket; matching is defined modulo B and
	// C separately.
	B  = 119
	C  = 127
	BC = B * C

	// YBits is the fingerprint width.
	YBits = K + ExtraBits

	// EntriesPerBlock is the number of first-table entries derived from one
	// 64-byte keystream block.
	EntriesPerBlock = 16

	// NumTables is the number of forward-propagation tables.
	NumTables = 7
)

// metaWords[t] is the number of K-bit metadata words carried by the entries
// of table t (index 0 unused). Table 1 carries its x value, tables 2 and 3
// carry the concatenated parent metadata, tables 4..6 carry a slice of the
// hash output, and table 7 carries none.
var metaWords = [NumTables + 1]int{0, 1, 2, 4, 4, 3, 2, 0}

// MetaBits returns the metadata width, in bits, of entries belonging to
// table t (1 <= t <= 7).
func MetaBits(t int) int {
	return metaWords[t] * K
}
