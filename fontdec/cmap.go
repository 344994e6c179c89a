package fontdec

import (
	"fmt"
	"sort"

	"golang.org/x/text/encoding/charmap"
)

// The largest code point of Unicode.
const maxCodePoint = 0x10ffff

// charMap maps code points to glyph indices.
type charMap map[rune]uint16

// encodingRecord is a cmap subtable candidate.
type encodingRecord struct {
	platformID, encodingID uint16
	format                 uint16
	rank                   int // higher is better
	data                   binarySegm
}

// platformEncodingRank ranks the platform/encoding combinations we support.
// Full Unicode repertoire is preferred over the BMP, Unicode over Mac Roman.
func platformEncodingRank(pid, psid uint16) int {
	switch pid {
	case 0: // Unicode
		switch psid {
		case 4, 6:
			return 4
		case 0, 1, 2, 3:
			return 3
		}
	case 3: // Windows
		switch psid {
		case 10:
			return 4
		case 1:
			return 3
		case 0: // Symbol
			return 2
		}
	case 1: // Macintosh
		if psid == 0 {
			return 1
		}
	}
	return 0
}

func supportedCmapFormat(format uint16) bool {
	return format == 0 || format == 4 || format == 6 || format == 12
}

// parseCMap selects the best subtable of a cmap table and reads its mappings.
// Mappings to glyph 0 are dropped.
func parseCMap(b binarySegm, ic *issueCollector) (charMap, error) {
	n, err := b.u16(2)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("font cmap has %d sub-tables in %d bytes", n, len(b))
	var enc encodingRecord
	for i := 0; i < int(n); i++ {
		rec, err := b.view(4+8*i, 8)
		if err != nil {
			return nil, fmt.Errorf("encoding records: %w", err)
		}
		pid, psid := u16(rec), u16(rec[2:])
		rank := platformEncodingRank(pid, psid)
		if rank <= enc.rank {
			continue
		}
		sub, err := b.link32Abs(rec, 4)
		if err != nil {
			ic.add(T("cmap"), "Subtable", SeverityMinor,
				"sub-table %d (platform=%d, encoding=%d) cannot be located", i, pid, psid)
			continue
		}
		format, err := sub.u16(0)
		if err != nil || !supportedCmapFormat(format) {
			tracer().Debugf("cmap sub-table with unsupported format %d", format)
			continue
		}
		enc = encodingRecord{platformID: pid, encodingID: psid, format: format, rank: rank, data: sub}
	}
	if enc.rank == 0 {
		return nil, fmt.Errorf("no supported cmap sub-table found")
	}
	tracer().Debugf("using cmap sub-table platform=%d, encoding=%d, format=%d",
		enc.platformID, enc.encodingID, enc.format)
	cm := make(charMap)
	switch enc.format {
	case 0:
		err = cm.format0(enc.data)
	case 4:
		err = cm.format4(enc.data)
	case 6:
		err = cm.format6(enc.data)
	case 12:
		err = cm.format12(enc.data)
	}
	if err != nil {
		return nil, fmt.Errorf("cmap format %d: %w", enc.format, err)
	}
	if enc.platformID == 1 {
		cm = cm.fromMacRoman()
	}
	return cm, nil
}

// link32Abs resolves a 32-bit offset stored in rec at position at, relative to b.
func (b binarySegm) link32Abs(rec binarySegm, at int) (binarySegm, error) {
	off, err := rec.u32(at)
	if err != nil {
		return nil, err
	}
	if uint64(off) >= uint64(len(b)) {
		return nil, errBufferBounds
	}
	return b[off:], nil
}

func (cm charMap) put(cp rune, gid uint16) {
	if gid != 0 && cp >= 0 && cp <= maxCodePoint {
		cm[cp] = gid
	}
}

// Format 0: byte encoding table.
func (cm charMap) format0(b binarySegm) error {
	glyphs, err := b.view(6, 256)
	if err != nil {
		return err
	}
	for c, gid := range glyphs {
		cm.put(rune(c), uint16(gid))
	}
	return nil
}

// Format 4: segment mapping to delta values.
func (cm charMap) format4(b binarySegm) error {
	segCountX2, err := b.u16(6)
	if err != nil {
		return err
	}
	segs := int(segCountX2)
	if segs%2 != 0 {
		return fmt.Errorf("odd segment count")
	}
	ends, err := b.view(14, segs)
	if err != nil {
		return err
	}
	starts, err := b.view(16+segs, segs)
	if err != nil {
		return err
	}
	deltas, err := b.view(16+2*segs, segs)
	if err != nil {
		return err
	}
	rangeOffsPos := 16 + 3*segs
	rangeOffs, err := b.view(rangeOffsPos, segs)
	if err != nil {
		return err
	}
	for i := 0; i < segs; i += 2 {
		start, end := u16(starts[i:]), u16(ends[i:])
		delta, ro := u16(deltas[i:]), u16(rangeOffs[i:])
		if start > end {
			return fmt.Errorf("segment %d: start %#04x > end %#04x", i/2, start, end)
		}
		for c := uint32(start); c <= uint32(end); c++ {
			if c == 0xffff {
				break
			}
			if ro == 0 {
				cm.put(rune(c), uint16(c)+delta)
				continue
			}
			addr := rangeOffsPos + i + int(ro) + 2*int(c-uint32(start))
			gid, err := b.u16(addr)
			if err != nil {
				return err
			}
			if gid != 0 {
				gid += delta
			}
			cm.put(rune(c), gid)
		}
	}
	return nil
}

// Format 6: trimmed table mapping.
func (cm charMap) format6(b binarySegm) error {
	first, err := b.u16(6)
	if err != nil {
		return err
	}
	count, err := b.u16(8)
	if err != nil {
		return err
	}
	glyphs, err := b.view(10, 2*int(count))
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		cm.put(rune(first)+rune(i), u16(glyphs[2*i:]))
	}
	return nil
}

// Format 12: segmented coverage.
func (cm charMap) format12(b binarySegm) error {
	n, err := b.u32(12)
	if err != nil {
		return err
	}
	if uint64(n)*12 > uint64(len(b)) {
		return errBufferBounds
	}
	groups, err := b.view(16, 12*int(n))
	if err != nil {
		return err
	}
	budget := uint32(2 * (maxCodePoint + 1)) // bounds the work for overlapping groups
	for g := groups; len(g) > 0; g = g[12:] {
		start, end, gid := u32(g), u32(g[4:]), u32(g[8:])
		if start > end || start > maxCodePoint {
			return fmt.Errorf("invalid group [%#x,%#x]", start, end)
		}
		end = min(end, maxCodePoint)
		if end-start >= budget {
			return fmt.Errorf("too many mappings")
		}
		budget -= end - start + 1
		for c := start; c <= end; c++ {
			id := gid + (c - start)
			if id > 0xffff {
				break
			}
			cm.put(rune(c), uint16(id))
		}
	}
	return nil
}

// fromMacRoman converts a map of Mac Roman character codes to Unicode.
func (cm charMap) fromMacRoman() charMap {
	uni := make(charMap, len(cm))
	for c, gid := range cm {
		if c > 0xff {
			continue
		}
		uni[charmap.Macintosh.DecodeByte(byte(c))] = gid
	}
	return uni
}

// codePoints returns the code points of cm in ascending order.
func (cm charMap) codePoints() []rune {
	cps := make([]rune, 0, len(cm))
	for cp := range cm {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })
	return cps
}
