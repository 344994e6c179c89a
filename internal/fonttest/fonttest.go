/*
Package fonttest builds font binaries and font tables for tests.

Builders assemble OpenType layout tables (GSUB/GPOS with feature lists and ligature
substitutions), splice tables into existing fonts and wrap SFNT fonts into WOFF and
WOFF2 containers. Data written for WOFF2 is Brotli-framed, but not compressed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fonttest

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// PutU16 writes v big-endian at position at of b.
func PutU16(b []byte, at int, v uint16) {
	binary.BigEndian.PutUint16(b[at:at+2], v)
}

// PutU32 writes v big-endian at position at of b.
func PutU32(b []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(b[at:at+4], v)
}

func appendU16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// CoverageFmt1 creates a coverage table of format 1.
func CoverageFmt1(glyphs ...uint16) []byte {
	out := make([]byte, 4+len(glyphs)*2)
	PutU16(out, 0, 1)
	PutU16(out, 2, uint16(len(glyphs)))
	for i, g := range glyphs {
		PutU16(out, 4+i*2, g)
	}
	return out
}

// CoverageFmt2 creates a coverage table of format 2 with a single range.
func CoverageFmt2(start, end uint16) []byte {
	out := make([]byte, 10)
	PutU16(out, 0, 2)
	PutU16(out, 2, 1)
	PutU16(out, 4, start)
	PutU16(out, 6, end)
	PutU16(out, 8, 0)
	return out
}

// --- Layout tables ---------------------------------------------------------

// Ligature is a ligature substitution rule: Components are replaced by Glyph.
// The first component is the covered glyph.
type Ligature struct {
	Glyph      uint16
	Components []uint16
}

// LigatureSubst creates a GSUB lookup subtable of type 4, format 1.
// Rules are grouped by their first component, in ascending glyph order.
func LigatureSubst(ligs ...Ligature) []byte {
	sets := map[uint16][]Ligature{}
	var first []uint16
	for _, l := range ligs {
		g := l.Components[0]
		if _, ok := sets[g]; !ok {
			first = append(first, g)
		}
		sets[g] = append(sets[g], l)
	}
	sort.Slice(first, func(i, j int) bool { return first[i] < first[j] })
	return ligatureSubst(CoverageFmt1(first...), first, sets)
}

// LigatureSubstCoverage creates a GSUB lookup subtable of type 4, format 1, with
// an explicit coverage table. Ligature set i holds the rules at ligs[i].
// Coverage and ligature set counts may disagree.
func LigatureSubstCoverage(coverage []byte, ligs ...[]Ligature) []byte {
	sets := map[uint16][]Ligature{}
	keys := make([]uint16, len(ligs))
	for i, set := range ligs {
		keys[i] = uint16(i)
		sets[uint16(i)] = set
	}
	return ligatureSubst(coverage, keys, sets)
}

func ligatureSubst(coverage []byte, keys []uint16, sets map[uint16][]Ligature) []byte {
	header := 6 + 2*len(keys)
	out := make([]byte, header)
	PutU16(out, 0, 1)
	PutU16(out, 4, uint16(len(keys)))
	for i, k := range keys {
		PutU16(out, 6+2*i, uint16(len(out)))
		out = append(out, ligatureSet(sets[k])...)
	}
	PutU16(out, 2, uint16(len(out)))
	return append(out, coverage...)
}

func ligatureSet(ligs []Ligature) []byte {
	out := make([]byte, 2+2*len(ligs))
	PutU16(out, 0, uint16(len(ligs)))
	for i, l := range ligs {
		PutU16(out, 2+2*i, uint16(len(out)))
		out = appendU16(out, l.Glyph)
		out = appendU16(out, uint16(len(l.Components)))
		for _, c := range l.Components[1:] {
			out = appendU16(out, c)
		}
	}
	return out
}

// ExtensionSubst wraps a subtable into a GSUB extension subtable (lookup type 7).
func ExtensionSubst(lookupType uint16, sub []byte) []byte {
	out := make([]byte, 8)
	PutU16(out, 0, 1)
	PutU16(out, 2, lookupType)
	PutU32(out, 4, 8)
	return append(out, sub...)
}

// Lookup is an entry of a lookup list.
type Lookup struct {
	Type      uint16
	Subtables [][]byte
}

// LayoutTable creates a GSUB or GPOS table (version 1.0) with an empty script list,
// a feature list with the given tags and a lookup list.
func LayoutTable(features []string, lookups ...Lookup) []byte {
	out := make([]byte, 10)
	PutU16(out, 0, 1)
	// ScriptList
	PutU16(out, 4, uint16(len(out)))
	out = appendU16(out, 0)
	// FeatureList, all records share one empty feature table
	PutU16(out, 6, uint16(len(out)))
	flist := make([]byte, 2+6*len(features))
	PutU16(flist, 0, uint16(len(features)))
	for i, tag := range features {
		copy(flist[2+6*i:], (tag + "    ")[:4])
		PutU16(flist, 2+6*i+4, uint16(len(flist)))
	}
	flist = append(flist, 0, 0, 0, 0)
	out = append(out, flist...)
	// LookupList
	PutU16(out, 8, uint16(len(out)))
	llist := make([]byte, 2+2*len(lookups))
	PutU16(llist, 0, uint16(len(lookups)))
	for i, l := range lookups {
		PutU16(llist, 2+2*i, uint16(len(llist)))
		llist = append(llist, lookup(l)...)
	}
	return append(out, llist...)
}

func lookup(l Lookup) []byte {
	out := make([]byte, 6+2*len(l.Subtables))
	PutU16(out, 0, l.Type)
	PutU16(out, 4, uint16(len(l.Subtables)))
	for i, sub := range l.Subtables {
		PutU16(out, 6+2*i, uint16(len(out)))
		out = append(out, sub...)
	}
	return out
}

// --- SFNT ------------------------------------------------------------------

// ReadTables splits an SFNT font into its tables.
func ReadTables(font []byte) (uint32, map[string][]byte, error) {
	if len(font) < 12 {
		return 0, nil, fmt.Errorf("font too short")
	}
	flavor := binary.BigEndian.Uint32(font)
	n := int(binary.BigEndian.Uint16(font[4:]))
	if len(font) < 12+16*n {
		return 0, nil, fmt.Errorf("table directory truncated")
	}
	tables := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		rec := font[12+16*i:]
		off, size := binary.BigEndian.Uint32(rec[8:]), binary.BigEndian.Uint32(rec[12:])
		if uint64(off)+uint64(size) > uint64(len(font)) {
			return 0, nil, fmt.Errorf("table %q out of bounds", rec[:4])
		}
		tables[string(rec[:4])] = font[off : off+size]
	}
	return flavor, tables, nil
}

// SFNT assembles an SFNT font from tables.
func SFNT(flavor uint32, tables map[string][]byte) []byte {
	tags := sortedTags(tables)
	out := appendU32(nil, flavor)
	out = appendU16(out, uint16(len(tags)))
	out = append(out, 0, 0, 0, 0, 0, 0) // binary search parameters are not used
	off := 12 + 16*len(tags)
	for _, tag := range tags {
		out = append(out, tag...)
		out = appendU32(out, 0)
		out = appendU32(out, uint32(off))
		out = appendU32(out, uint32(len(tables[tag])))
		off += pad4(len(tables[tag]))
	}
	for _, tag := range tags {
		out = append(out, tables[tag]...)
		out = append(out, make([]byte, pad4(len(tables[tag]))-len(tables[tag]))...)
	}
	return out
}

// WithTables replaces or adds tables of an SFNT font. A nil table is removed.
func WithTables(font []byte, replace map[string][]byte) ([]byte, error) {
	flavor, tables, err := ReadTables(font)
	if err != nil {
		return nil, err
	}
	for tag, t := range replace {
		if t == nil {
			delete(tables, tag)
		} else {
			tables[tag] = t
		}
	}
	return SFNT(flavor, tables), nil
}

func sortedTags(tables map[string][]byte) []string {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// Collection wraps an SFNT font into a TrueType collection holding this single font.
func Collection(font []byte) ([]byte, error) {
	if _, _, err := ReadTables(font); err != nil {
		return nil, err
	}
	const header = 16
	out := make([]byte, header, header+len(font))
	copy(out, "ttcf")
	PutU32(out, 4, 0x00010000)
	PutU32(out, 8, 1)
	PutU32(out, 12, header)
	out = append(out, font...)
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := 0; i < n; i++ {
		at := header + 12 + 16*i + 8
		PutU32(out, at, binary.BigEndian.Uint32(out[at:])+header)
	}
	return out, nil
}
