package fontdec

import "errors"

// Reading bytes from a font's binary representation

var (
	errBufferBounds = errors.New("buffer bounds error")
	errNullOffset   = errors.New("null offset")
)

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// binarySegm is a segment of byte data. All reads are bounds checked.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// from returns the tail of b, starting at offset.
func (b binarySegm) from(offset int) (binarySegm, error) {
	if offset < 0 || offset > len(b) {
		return nil, errBufferBounds
	}
	return b[offset:], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// i16 returns the int16 in b at the relative offset i.
func (b binarySegm) i16(i int) (int16, error) {
	n, err := b.u16(i)
	return int16(n), err
}

// link16 follows a 16-bit offset stored at position at. The offset is relative
// to the start of b. A zero offset is reported as errNullOffset.
func (b binarySegm) link16(at int) (binarySegm, error) {
	off, err := b.u16(at)
	if err != nil {
		return nil, err
	}
	if off == 0 {
		return nil, errNullOffset
	}
	return b.from(int(off))
}

// link32 follows a 32-bit offset stored at position at, relative to the start of b.
func (b binarySegm) link32(at int) (binarySegm, error) {
	off, err := b.u32(at)
	if err != nil {
		return nil, err
	}
	if off == 0 {
		return nil, errNullOffset
	}
	if uint64(off) > uint64(len(b)) {
		return nil, errBufferBounds
	}
	return b.from(int(off))
}

// --- Tags ------------------------------------------------------------------

// Tag is a 4-byte identifier of an OpenType table or feature.
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
//
//	MakeTag([]byte("cmap"))
//
// If b is shorter than 4 bytes, it is padded with spaces.
func MakeTag(b []byte) Tag {
	if len(b) < 4 {
		b = append(append([]byte{}, b...), []byte("    ")[:4-len(b)]...)
	}
	return Tag(u32(b))
}

// T creates a Tag from a string, e.g. T("GSUB").
func T(t string) Tag {
	return MakeTag([]byte(t))
}

func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	})
}

// printable reports whether all bytes of t are printable ASCII.
func (t Tag) printable() bool {
	for _, c := range []byte(t.String()) {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
