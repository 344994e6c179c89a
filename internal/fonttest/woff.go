package fonttest

import (
	"bytes"
	"compress/zlib"
)

// WOFF wraps an SFNT font into a WOFF 1.0 container. Tables are compressed
// unless compression does not pay off.
func WOFF(font []byte) ([]byte, error) {
	flavor, tables, err := ReadTables(font)
	if err != nil {
		return nil, err
	}
	tags := sortedTags(tables)
	data := make([][]byte, len(tags))
	for i, tag := range tags {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(tables[tag]); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		data[i] = tables[tag]
		if buf.Len() < len(tables[tag]) {
			data[i] = buf.Bytes()
		}
	}
	sfntSize := 12 + 16*len(tags)
	for _, tag := range tags {
		sfntSize += pad4(len(tables[tag]))
	}
	off := 44 + 20*len(tags)
	dir := make([]byte, 0, 20*len(tags))
	for i, tag := range tags {
		dir = append(dir, tag...)
		dir = appendU32(dir, uint32(off))
		dir = appendU32(dir, uint32(len(data[i])))
		dir = appendU32(dir, uint32(len(tables[tag])))
		dir = appendU32(dir, 0)
		off += pad4(len(data[i]))
	}
	out := make([]byte, 44, off)
	copy(out, "wOFF")
	PutU32(out, 4, flavor)
	PutU32(out, 8, uint32(off))
	PutU16(out, 12, uint16(len(tags)))
	PutU32(out, 16, uint32(sfntSize))
	PutU16(out, 20, 1)
	out = append(out, dir...)
	for _, d := range data {
		out = append(out, d...)
		out = append(out, make([]byte, pad4(len(d))-len(d))...)
	}
	return out, nil
}

var woff2Tags = map[string]byte{
	"cmap": 0, "head": 1, "hhea": 2, "hmtx": 3, "maxp": 4, "name": 5, "OS/2": 6, "post": 7,
	"cvt ": 8, "fpgm": 9, "glyf": 10, "loca": 11, "prep": 12, "CFF ": 13, "GPOS": 27, "GSUB": 28,
}

// WOFF2 wraps an SFNT font into a WOFF 2.0 container. glyf and loca use the null
// transform. The table data is stored in uncompressed Brotli meta-blocks.
func WOFF2(font []byte) ([]byte, error) {
	flavor, tables, err := ReadTables(font)
	if err != nil {
		return nil, err
	}
	tags := sortedTags(tables)
	var dir, payload []byte
	sfntSize := 12 + 16*len(tags)
	for _, tag := range tags {
		flags, known := woff2Tags[tag]
		if !known {
			flags = 0x3f
		}
		if tag == "glyf" || tag == "loca" {
			flags |= 3 << 6
		}
		dir = append(dir, flags)
		if !known {
			dir = append(dir, tag...)
		}
		dir = appendUIntBase128(dir, uint32(len(tables[tag])))
		payload = append(payload, tables[tag]...)
		sfntSize += pad4(len(tables[tag]))
	}
	stream := brotliStored(payload)
	out := make([]byte, 48)
	copy(out, "wOF2")
	PutU32(out, 4, flavor)
	PutU16(out, 12, uint16(len(tags)))
	PutU32(out, 16, uint32(sfntSize))
	PutU32(out, 20, uint32(len(stream)))
	PutU16(out, 24, 1)
	out = append(out, dir...)
	out = append(out, stream...)
	out = append(out, make([]byte, pad4(len(out))-len(out))...)
	PutU32(out, 8, uint32(len(out)))
	return out, nil
}

func appendUIntBase128(b []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(b, tmp[i:]...)
}

// brotliStored frames data as a Brotli stream of uncompressed meta-blocks
// (RFC 7932, section 9).
func brotliStored(data []byte) []byte {
	w := &bitWriter{}
	w.write(1, 1) // WBITS = 17 + 7
	w.write(7, 3)
	for len(data) > 0 {
		n := min(len(data), 1<<16)
		w.write(0, 1) // ISLAST
		w.write(0, 2) // MNIBBLES = 4
		w.write(uint64(n-1), 16)
		w.write(1, 1) // ISUNCOMPRESSED
		w.align()
		w.out = append(w.out, data[:n]...)
		data = data[n:]
	}
	w.write(1, 1) // ISLAST
	w.write(1, 1) // ISLASTEMPTY
	w.align()
	return w.out
}

// bitWriter writes bits LSB first.
type bitWriter struct {
	out  []byte
	acc  uint64
	bits uint
}

func (w *bitWriter) write(v uint64, n uint) {
	w.acc |= v << w.bits
	w.bits += n
	for w.bits >= 8 {
		w.out = append(w.out, byte(w.acc))
		w.acc >>= 8
		w.bits -= 8
	}
}

func (w *bitWriter) align() {
	if w.bits > 0 {
		w.out = append(w.out, byte(w.acc))
		w.acc, w.bits = 0, 0
	}
}
