package sorted

import (
	"encoding/binary"
	"fmt"

	"posplot/internal/core"
)

// Fixed little-endian entry layout shared by the disk run and the checksum
// helpers: y(8) x(4) pos(4) off(2) metaBits(2) meta(ceil(metaBits/8)).
const headerSize = 8 + 4 + 4 + 2 + 2

// AppendEntry appends the serialized form of e to dst and returns the
// extended slice.
func AppendEntry(dst []byte, e core.Entry) []byte {
	meta := e.Meta.Bytes()
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint64(hdr[0:], e.Y)
	binary.LittleEndian.PutUint32(hdr[8:], e.X)
	binary.LittleEndian.PutUint32(hdr[12:], e.Pos)
	binary.LittleEndian.PutUint16(hdr[16:], e.Off)
	binary.LittleEndian.PutUint16(hdr[18:], uint16(e.Meta.Len()))
	dst = append(dst, hdr[:]...)
	return append(dst, meta...)
}

// DecodeEntry parses one serialized entry.
func DecodeEntry(buf []byte) (core.Entry, error) {
	if len(buf) < headerSize {
		return core.Entry{}, fmt.Errorf("sorted: entry record truncated (%d bytes)", len(buf))
	}
	e := core.Entry{
		Y:   binary.LittleEndian.Uint64(buf[0:]),
		X:   binary.LittleEndian.Uint32(buf[8:]),
		Pos: binary.LittleEndian.Uint32(buf[12:]),
		Off: binary.LittleEndian.Uint16(buf[16:]),
	}
	metaBits := int(binary.LittleEndian.Uint16(buf[18:]))
	metaBytes := (metaBits + 7) / 8
	if len(buf) < headerSize+metaBytes {
		return core.Entry{}, fmt.Errorf("sorted: entry metadata truncated (%d bits)", metaBits)
	}
	if metaBits > 0 {
		e.Meta = core.NewBits(buf[headerSize:headerSize+metaBytes], metaBits)
	}
	return e, nil
}
