package core

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/blake3"
)

// Fx evaluates the hash function producing table t (2 <= t <= 7) from
// matched pairs of table t-1 entries. Construct one per table index; the
// table-dependent extraction strategy is fixed at construction so the hot
// path does not re-branch on it.
type Fx struct {
	table     int
	prevTable int
}

// NewFx constructs an evaluator for output table t.
func NewFx(t int) (*Fx, error) {
	if t < 2 || t > NumTables {
		return nil, fmt.Errorf("fx: table index %d out of range [2,%d]", t, NumTables)
	}
	return &Fx{table: t, prevTable: t - 1}, nil
}

// Evaluate produces the entry for one matched (left, right) pair. The
// caller sets Pos/Off on the result; Evaluate fills Y and Meta.
func (f *Fx) Evaluate(left, right Entry) Entry {
	lc := left.Metadata(f.prevTable)
	rc := right.Metadata(f.prevTable)

	input := BitsFromUint64(left.Y, YBits)
	var c Bits
	if f.table < 4 {
		// The concatenated parent metadata is both hashed and carried
		// forward as the new entry's metadata.
		c = lc.Append(rc)
		input = input.Append(c)
	} else {
		input = input.Append(lc).Append(rc)
	}

	sum := blake3.Sum256(input.Bytes())

	out := Entry{Y: binary.BigEndian.Uint64(sum[:8]) >> (64 - YBits)}
	switch {
	case f.table < 4:
		out.Meta = c
	case f.table < NumTables:
		// Metadata is the bit slice of the hash immediately following the
		// fingerprint; the offset is not byte aligned.
		n := MetaBits(f.table)
		out.Meta = NewBits(sum[:], 8*len(sum)).Slice(YBits, YBits+n)
	}
	return out
}
