package core

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// IDSize is the plot identifier length in bytes.
const IDSize = 32

// F1 derives first-table entries from a 256-bit plot identifier. The
// identifier is turned into a cipher key by prefixing the table tag byte
// and keeping the first 31 id bytes; keystream block i then yields the 16
// entries with x in [i*16, i*16+16).
//
// An F1 is cheap to construct and not safe for concurrent use; give each
// worker its own.
type F1 struct {
	key    [chacha20.KeySize]byte
	cipher *chacha20.Cipher
	next   uint32
}

// NewF1 constructs a generator for the given plot identifier.
func NewF1(id *[IDSize]byte) *F1 {
	f := &F1{}
	f.key[0] = 1
	copy(f.key[1:], id[:IDSize-1])
	return f
}

// ComputeBlock fills out (len >= EntriesPerBlock) with the entries derived
// from keystream block index. Blocks may be requested in any order;
// sequential ascending access is the cheap path. Results are a pure
// function of (id, index).
func (f *F1) ComputeBlock(index uint64, out []Entry) {
	counter := uint32(index)
	if f.cipher == nil || counter < f.next {
		// The cipher cannot rewind its counter; re-key instead.
		var nonce [chacha20.NonceSize]byte
		c, err := chacha20.NewUnauthenticatedCipher(f.key[:], nonce[:])
		if err != nil {
			panic("f1: " + err.Error())
		}
		f.cipher = c
		f.next = 0
	}
	if counter > f.next {
		f.cipher.SetCounter(counter)
	}
	// XOR over a zeroed buffer leaves just the keystream block.
	var buf [64]byte
	f.cipher.XORKeyStream(buf[:], buf[:])
	f.next = counter + 1

	for i := 0; i < EntriesPerBlock; i++ {
		x := index*EntriesPerBlock + uint64(i)
		w := uint64(binary.LittleEndian.Uint32(buf[i*4:]))
		out[i] = Entry{
			Y: (w << ExtraBits) | (x >> (K - ExtraBits)),
			X: uint32(x),
		}
	}
}
