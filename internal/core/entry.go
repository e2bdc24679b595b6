package core

// Entry is one row of a forward-propagation table.
//
// Table 1 entries carry X and derive their metadata from it. Entries of
// tables 2..7 carry Pos/Off backreferences into the previous table and an
// explicit metadata bit string whose width is fixed per table (MetaBits).
type Entry struct {
	// Y is the (K+ExtraBits)-bit fingerprint driving the matching relation.
	Y uint64

	// X is the table-1 position; unused for later tables.
	X uint32

	// Pos is the global index of the left parent's position within the
	// previous table. Off locates the right parent relative to the left
	// parent's bucket. Both are zero for table 1.
	Pos uint32
	Off uint16

	// Meta carries the entry's metadata bits for tables 2..6.
	Meta Bits
}

// Bucket returns the entry's bucket index, floor(y/BC).
func (e Entry) Bucket() uint64 { return e.Y / BC }

// Metadata returns the entry's metadata bit string given the table the
// entry belongs to. For table 1 this is the K-bit x value.
func (e Entry) Metadata(table int) Bits {
	if table == 1 {
		return BitsFromUint64(uint64(e.X), K)
	}
	return e.Meta
}

// Match is a provisional pairing of adjacent-bucket entries prior to
// hashing. Pos is the global position of the left entry; Off encodes where
// the right entry sits relative to the left entry's bucket, such that the
// right entry's position within its own bucket is Off - (|L| - posL).
type Match struct {
	Left  Entry
	Right Entry
	Pos   uint32
	Off   uint16
}
