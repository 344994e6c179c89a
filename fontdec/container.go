package fontdec

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sort"

	"github.com/dsnet/compress/brotli"
)

// Container formats
const (
	FormatTrueType   = "TrueType"
	FormatOpenType   = "OpenType" // CFF outlines
	FormatCollection = "TrueType collection"
	FormatWOFF       = "WOFF"
	FormatWOFF2      = "WOFF2"
	formatUnknown    = "unknown"
)

const (
	sfntTrueType = 0x00010000
	sfntOpenType = 0x4f54544f // OTTO
	sfntApple    = 0x74727565 // true
	sigTTC       = 0x74746366 // ttcf
	sigWOFF      = 0x774f4646 // wOFF
	sigWOFF2     = 0x774f4632 // wOF2
)

// Fonts larger than this are rejected before decompression.
const maxSfntSize = 64 << 20

// tableDirectory maps table tags to the tables' bytes.
type tableDirectory map[Tag]binarySegm

// container is the result of unwrapping a font file.
type container struct {
	format string
	sfnt   []byte // bytes to hand to package sfnt
	dir    int    // offset of the table directory within sfnt
	tables tableDirectory
}

// unwrap detects the container format of a font binary and locates its tables.
// WOFF containers are decompressed into a plain SFNT.
func unwrap(data []byte) (*container, error) {
	if len(data) < 12 {
		return nil, decodeError(formatUnknown, "file too short", nil)
	}
	sig := u32(data)
	c := &container{sfnt: data}
	var err error
	switch sig {
	case sfntTrueType, sfntApple:
		c.format = FormatTrueType
	case sfntOpenType:
		c.format = FormatOpenType
	case sigTTC:
		c.format = FormatCollection
		c.dir, err = firstCollectionFont(binarySegm(data))
	case sigWOFF:
		c.format = FormatWOFF
		c.sfnt, err = decodeWOFF(binarySegm(data))
	case sigWOFF2:
		c.format = FormatWOFF2
		c.sfnt, err = decodeWOFF2(binarySegm(data))
	default:
		return nil, decodeError(formatUnknown, fmt.Sprintf("unknown signature %#08x", sig), nil)
	}
	if err != nil {
		return nil, decodeError(c.format, "container", err)
	}
	if c.tables, err = readTableDirectory(binarySegm(c.sfnt), c.dir); err != nil {
		return nil, decodeError(c.format, "table directory", err)
	}
	tracer().Debugf("%s font with %d tables", c.format, len(c.tables))
	return c, nil
}

// firstCollectionFont returns the offset of the table directory of the first font
// in a TrueType collection.
func firstCollectionFont(b binarySegm) (int, error) {
	n, err := b.u32(8)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("collection contains no fonts")
	}
	off, err := b.u32(12)
	if err != nil {
		return 0, err
	}
	if uint64(off) >= uint64(len(b)) {
		return 0, errBufferBounds
	}
	tracer().Debugf("collection of %d fonts, using the first one", n)
	return int(off), nil
}

// readTableDirectory reads the offset table at position dir. Table offsets are
// relative to the start of b, which holds for collections as well.
func readTableDirectory(b binarySegm, dir int) (tableDirectory, error) {
	version, err := b.u32(dir)
	if err != nil {
		return nil, err
	}
	if version != sfntTrueType && version != sfntOpenType && version != sfntApple {
		return nil, fmt.Errorf("font type not supported: %#08x", version)
	}
	n, err := b.u16(dir + 4)
	if err != nil {
		return nil, err
	}
	recs, err := b.view(dir+12, 16*int(n))
	if err != nil {
		return nil, fmt.Errorf("table records: %w", err)
	}
	tables := make(tableDirectory, n)
	for r, prev := recs, Tag(0); len(r) > 0; r = r[16:] {
		tag := MakeTag(r)
		if tag < prev {
			return nil, fmt.Errorf("table order")
		}
		prev = tag
		off, size := u32(r[8:12]), u32(r[12:16])
		if uint64(off)+uint64(size) > uint64(len(b)) {
			return nil, fmt.Errorf("table %s: bounds [%d:%d] exceed font size %d",
				tag, off, uint64(off)+uint64(size), len(b))
		}
		tables[tag] = b[off : off+size]
	}
	return tables, nil
}

// --- WOFF ------------------------------------------------------------------

// decodeWOFF unpacks a WOFF 1.0 file into an SFNT.
// See https://www.w3.org/TR/WOFF/
func decodeWOFF(b binarySegm) ([]byte, error) {
	flavor, _ := b.u32(4)
	n, err := b.u16(12)
	if err != nil {
		return nil, err
	}
	if total, _ := b.u32(16); total > maxSfntSize {
		return nil, fmt.Errorf("font too large: %d bytes", total)
	}
	entries, err := b.view(44, 20*int(n))
	if err != nil {
		return nil, fmt.Errorf("table directory: %w", err)
	}
	tables := make(map[Tag][]byte, n)
	for e := entries; len(e) > 0; e = e[20:] {
		tag := MakeTag(e)
		off, compLen, origLen := int(u32(e[4:])), int(u32(e[8:])), int(u32(e[12:]))
		data, err := b.view(off, compLen)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", tag, err)
		}
		switch {
		case compLen == origLen:
			tables[tag] = data
		case compLen < origLen:
			if tables[tag], err = inflate(data, origLen); err != nil {
				return nil, fmt.Errorf("table %s: %w", tag, err)
			}
		default:
			return nil, fmt.Errorf("table %s: compressed size exceeds original size", tag)
		}
	}
	return assembleSFNT(flavor, tables), nil
}

func inflate(data []byte, size int) ([]byte, error) {
	if size > maxSfntSize {
		return nil, fmt.Errorf("table too large: %d bytes", size)
	}
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out := make([]byte, size)
	if _, err = io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- WOFF2 -----------------------------------------------------------------

// woff2KnownTags are the table tags of the WOFF2 directory flag encoding.
var woff2KnownTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

type woff2Entry struct {
	tag    Tag
	length int
}

// decodeWOFF2 unpacks a WOFF 2.0 file into an SFNT. Transformed tables are not
// supported, i.e. glyf and loca have to use the null transform.
// See https://www.w3.org/TR/WOFF2/
func decodeWOFF2(b binarySegm) ([]byte, error) {
	flavor, _ := b.u32(4)
	if flavor == sigTTC {
		return nil, fmt.Errorf("WOFF2 font collections not supported")
	}
	n, err := b.u16(12)
	if err != nil {
		return nil, err
	}
	if total, _ := b.u32(16); total > maxSfntSize {
		return nil, fmt.Errorf("font too large: %d bytes", total)
	}
	compressed, err := b.u32(20)
	if err != nil {
		return nil, err
	}
	pos := 48
	entries := make([]woff2Entry, 0, n)
	total := 0
	for i := 0; i < int(n); i++ {
		flags, err := b.view(pos, 1)
		if err != nil {
			return nil, fmt.Errorf("table directory: %w", err)
		}
		pos++
		var tag Tag
		if idx := flags[0] & 0x3f; idx == 0x3f {
			t, err := b.view(pos, 4)
			if err != nil {
				return nil, fmt.Errorf("table directory: %w", err)
			}
			tag = MakeTag(t)
			pos += 4
		} else {
			tag = T(woff2KnownTags[idx])
		}
		length, k, err := readUIntBase128(b, pos)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", tag, err)
		}
		pos += k
		version := flags[0] >> 6
		transformed := version != 0
		if tag == T("glyf") || tag == T("loca") {
			transformed = version != 3
		}
		if transformed {
			return nil, fmt.Errorf("table %s: transformed tables not supported", tag)
		}
		total += int(length)
		if total > maxSfntSize {
			return nil, fmt.Errorf("font too large")
		}
		entries = append(entries, woff2Entry{tag: tag, length: int(length)})
	}
	stream, err := b.view(pos, int(compressed))
	if err != nil {
		return nil, fmt.Errorf("compressed data: %w", err)
	}
	br, err := brotli.NewReader(bytes.NewReader(stream), nil)
	if err != nil {
		return nil, err
	}
	defer br.Close()
	data := make([]byte, total)
	if _, err = io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	tables := make(map[Tag][]byte, len(entries))
	for _, e := range entries {
		tables[e.tag], data = data[:e.length], data[e.length:]
	}
	return assembleSFNT(flavor, tables), nil
}

// readUIntBase128 reads a variable-length integer of the WOFF2 directory.
// It returns the value and the number of bytes consumed.
func readUIntBase128(b binarySegm, pos int) (uint32, int, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		c, err := b.view(pos+i, 1)
		if err != nil {
			return 0, 0, err
		}
		if i == 0 && c[0] == 0x80 {
			return 0, 0, fmt.Errorf("UIntBase128 with leading zeros")
		}
		if v&0xfe000000 != 0 {
			return 0, 0, fmt.Errorf("UIntBase128 overflow")
		}
		v = v<<7 | uint32(c[0]&0x7f)
		if c[0]&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("UIntBase128 longer than 5 bytes")
}

// --- SFNT assembly ---------------------------------------------------------

// assembleSFNT builds an SFNT binary from a set of tables. Tables are sorted by tag
// and 4-byte aligned.
func assembleSFNT(flavor uint32, tables map[Tag][]byte) []byte {
	tags := make([]Tag, 0, len(tables))
	size := 12 + 16*len(tables)
	for tag, data := range tables {
		tags = append(tags, tag)
		size += (len(data) + 3) &^ 3
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	out := make([]byte, size)
	putU32(out, 0, flavor)
	n := uint16(len(tags))
	putU16(out, 4, n)
	entrySelector := uint16(0)
	for 1<<(entrySelector+1) <= n {
		entrySelector++
	}
	searchRange := uint16(16 << entrySelector)
	putU16(out, 6, searchRange)
	putU16(out, 8, entrySelector)
	putU16(out, 10, 16*n-searchRange)
	off := 12 + 16*len(tags)
	for i, tag := range tags {
		data := tables[tag]
		rec := 12 + 16*i
		putU32(out, rec, uint32(tag))
		putU32(out, rec+4, checksum(data))
		putU32(out, rec+8, uint32(off))
		putU32(out, rec+12, uint32(len(data)))
		copy(out[off:], data)
		off += (len(data) + 3) &^ 3
	}
	return out
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var w [4]byte
		copy(w[:], data[i:])
		sum += u32(w[:])
	}
	return sum
}

func putU16(b []byte, at int, v uint16) {
	b[at], b[at+1] = byte(v>>8), byte(v)
}

func putU32(b []byte, at int, v uint32) {
	b[at], b[at+1], b[at+2], b[at+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}
