package core

import "encoding/binary"

// Bits is an immutable MSB-first bit string. The first bit of the string is
// the most significant bit of the first byte, and any padding bits in the
// last byte are zero. The zero value is the empty string.
type Bits struct {
	data []byte
	n    int
}

// NewBits constructs a bit string from the first n bits of data. The input
// is copied.
func NewBits(data []byte, n int) Bits {
	nb := (n + 7) / 8
	out := make([]byte, nb)
	copy(out, data[:nb])
	return Bits{data: out, n: n}.maskPad()
}

// BitsFromUint64 constructs a bit string from the low n bits of v, most
// significant bit first. n must be <= 64.
func BitsFromUint64(v uint64, n int) Bits {
	if n == 0 {
		return Bits{}
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v<<(64-uint(n)))
	return Bits{data: append([]byte(nil), buf[:(n+7)/8]...), n: n}
}

// Len returns the length of the string in bits.
func (b Bits) Len() int { return b.n }

// Append returns the concatenation of b and o.
func (b Bits) Append(o Bits) Bits {
	if o.n == 0 {
		return b
	}
	n := b.n + o.n
	out := make([]byte, (n+7)/8)
	copy(out, b.data)
	pos := b.n >> 3
	off := uint(b.n & 7)
	if off == 0 {
		copy(out[pos:], o.data)
	} else {
		for i, ob := range o.data {
			out[pos+i] |= ob >> off
			if pos+i+1 < len(out) {
				out[pos+i+1] = ob << (8 - off)
			}
		}
	}
	return Bits{data: out, n: n}
}

// Slice returns the bit range [start, end). Offsets need not be
// byte-aligned.
func (b Bits) Slice(start, end int) Bits {
	n := end - start
	if n <= 0 {
		return Bits{}
	}
	out := make([]byte, (n+7)/8)
	pos := start >> 3
	off := uint(start & 7)
	if off == 0 {
		copy(out, b.data[pos:pos+len(out)])
	} else {
		for i := range out {
			v := b.data[pos+i] << off
			if pos+i+1 < len(b.data) {
				v |= b.data[pos+i+1] >> (8 - off)
			}
			out[i] = v
		}
	}
	return Bits{data: out, n: n}.maskPad()
}

// Bytes returns the packed representation, ceil(n/8) bytes with zero
// padding in the final byte.
func (b Bits) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

// Uint64 interprets the string (n <= 64) as a big-endian integer.
func (b Bits) Uint64() uint64 {
	var v uint64
	for _, by := range b.data {
		v = v<<8 | uint64(by)
	}
	if pad := uint(len(b.data)*8 - b.n); pad > 0 {
		v >>= pad
	}
	return v
}

// Equal reports whether two bit strings have identical length and content.
func (b Bits) Equal(o Bits) bool {
	if b.n != o.n {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (b Bits) maskPad() Bits {
	if pad := uint(b.n & 7); pad != 0 && len(b.data) > 0 {
		b.data[len(b.data)-1] &= 0xFF << (8 - pad)
	}
	return b
}
