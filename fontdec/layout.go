package fontdec

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontsieve/introspect"
)

// Limits for layout table decoding
const (
	MaxLookupCount    = 1000  // lookups per lookup list
	MaxCoverageGlyphs = 65536 // glyphs of an expanded coverage table
)

// GSUB lookup types we care about
const (
	gsubLigature  = 4
	gsubExtension = 7
)

var errLayoutHeader = errors.New("layout table header")

// layoutSection follows one of the section offsets of a GSUB or GPOS header.
// A null offset yields an empty section.
//
//	uint16  majorVersion
//	uint16  minorVersion
//	Offset16  scriptListOffset
//	Offset16  featureListOffset
//	Offset16  lookupListOffset
func layoutSection(b binarySegm, at int) (binarySegm, error) {
	major, err := b.u16(0)
	if err != nil || major != 1 {
		return nil, errLayoutHeader
	}
	sect, err := b.link16(at)
	if errors.Is(err, errNullOffset) {
		return nil, nil
	}
	return sect, err
}

const (
	featureListOffset = 6
	lookupListOffset  = 8
)

// featureTags reads the tags of a FeatureList. Tags are returned in list order,
// without duplicates.
func featureTags(features binarySegm) ([]Tag, error) {
	if features == nil {
		return nil, nil
	}
	n, err := features.u16(0)
	if err != nil {
		return nil, err
	}
	recs, err := features.view(2, 6*int(n))
	if err != nil {
		return nil, fmt.Errorf("feature records: %w", err)
	}
	tags := make([]Tag, 0, n)
	seen := make(map[Tag]bool)
	for r := recs; len(r) > 0; r = r[6:] {
		tag := MakeTag(r)
		if !tag.printable() {
			return nil, fmt.Errorf("invalid feature tag %#08x", uint32(tag))
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// --- GSUB lookups ----------------------------------------------------------

// parseSubstitutions reads the LookupList of a GSUB table. Extension lookups are
// unwrapped. Subtables are decoded for ligature substitution lookups only.
func parseSubstitutions(gsub binarySegm) (introspect.SubstitutionTable, error) {
	subs := introspect.SubstitutionTable{}
	lookups, err := layoutSection(gsub, lookupListOffset)
	if err != nil {
		return subs, fmt.Errorf("LookupList: %w", err)
	}
	if lookups == nil {
		return subs, nil
	}
	n, err := lookups.u16(0)
	if err != nil {
		return subs, err
	}
	if n > MaxLookupCount {
		return subs, fmt.Errorf("LookupList: %d lookups exceed limit of %d", n, MaxLookupCount)
	}
	subs.Lookups = make([]introspect.SubstitutionLookup, 0, n)
	for i := 0; i < int(n); i++ {
		lookup, err := lookups.link16(2 + 2*i)
		if err != nil {
			return subs, fmt.Errorf("lookup %d: %w", i, err)
		}
		l, err := parseLookup(lookup)
		if err != nil {
			return subs, fmt.Errorf("lookup %d: %w", i, err)
		}
		subs.Lookups = append(subs.Lookups, l)
	}
	return subs, nil
}

// uint16  lookupType
// uint16  lookupFlag
// uint16  subTableCount
// Offset16  subtableOffsets[subTableCount]
func parseLookup(b binarySegm) (introspect.SubstitutionLookup, error) {
	l := introspect.SubstitutionLookup{}
	typ, err := b.u16(0)
	if err != nil {
		return l, err
	}
	count, err := b.u16(4)
	if err != nil {
		return l, err
	}
	l.Type = typ
	for j := 0; j < int(count); j++ {
		sub, err := b.link16(6 + 2*j)
		if err != nil {
			return l, fmt.Errorf("subtable %d: %w", j, err)
		}
		subType := typ
		if typ == gsubExtension {
			if subType, sub, err = unwrapExtension(sub); err != nil {
				return l, fmt.Errorf("subtable %d: %w", j, err)
			}
			if j == 0 {
				l.Type = subType
			} else if subType != l.Type {
				return l, fmt.Errorf("extension subtables of mixed types %d and %d", l.Type, subType)
			}
		}
		if subType != gsubLigature {
			continue
		}
		st, err := parseLigatureSubst(sub)
		if err != nil {
			return l, fmt.Errorf("ligature subtable %d: %w", j, err)
		}
		l.Subtables = append(l.Subtables, st)
	}
	return l, nil
}

// uint16  substFormat
// uint16  extensionLookupType
// Offset32  extensionOffset
func unwrapExtension(b binarySegm) (uint16, binarySegm, error) {
	format, err := b.u16(0)
	if err != nil {
		return 0, nil, err
	}
	if format != 1 {
		return 0, nil, fmt.Errorf("extension format %d", format)
	}
	typ, err := b.u16(2)
	if err != nil {
		return 0, nil, err
	}
	if typ == gsubExtension {
		return 0, nil, fmt.Errorf("nested extension subtable")
	}
	sub, err := b.link32(4)
	return typ, sub, err
}

// parseLigatureSubst decodes a ligature substitution subtable (format 1).
// Ligature set counts are taken as stated by the font, even if they do not match
// the coverage.
//
//	uint16  substFormat
//	Offset16  coverageOffset
//	uint16  ligatureSetCount
//	Offset16  ligatureSetOffsets[ligatureSetCount]
func parseLigatureSubst(b binarySegm) (introspect.SubstitutionSubtable, error) {
	st := introspect.SubstitutionSubtable{}
	format, err := b.u16(0)
	if err != nil {
		return st, err
	}
	if format != 1 {
		return st, fmt.Errorf("format %d", format)
	}
	cov, err := b.link16(2)
	if err != nil {
		return st, fmt.Errorf("coverage: %w", err)
	}
	if st.Coverage, err = parseCoverage(cov); err != nil {
		return st, fmt.Errorf("coverage: %w", err)
	}
	n, err := b.u16(4)
	if err != nil {
		return st, err
	}
	st.LigatureSets = make([][]introspect.LigatureRecord, n)
	for i := 0; i < int(n); i++ {
		set, err := b.link16(6 + 2*i)
		if err != nil {
			return st, fmt.Errorf("ligature set %d: %w", i, err)
		}
		if st.LigatureSets[i], err = parseLigatureSet(set); err != nil {
			return st, fmt.Errorf("ligature set %d: %w", i, err)
		}
	}
	return st, nil
}

//	uint16  ligatureCount
//	Offset16  ligatureOffsets[ligatureCount]
//
// Ligature table:
//
//	uint16  ligatureGlyph
//	uint16  componentCount
//	uint16  componentGlyphIDs[componentCount - 1]
func parseLigatureSet(b binarySegm) ([]introspect.LigatureRecord, error) {
	n, err := b.u16(0)
	if err != nil {
		return nil, err
	}
	recs := make([]introspect.LigatureRecord, 0, n)
	for k := 0; k < int(n); k++ {
		lig, err := b.link16(2 + 2*k)
		if err != nil {
			return nil, fmt.Errorf("ligature %d: %w", k, err)
		}
		glyph, err := lig.u16(0)
		if err != nil {
			return nil, err
		}
		count, err := lig.u16(2)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("ligature %d without components", k)
		}
		comps, err := lig.view(4, 2*(int(count)-1))
		if err != nil {
			return nil, fmt.Errorf("ligature %d: components: %w", k, err)
		}
		rec := introspect.LigatureRecord{
			Glyph:      introspect.GlyphID(glyph),
			Components: make([]introspect.GlyphID, count-1),
		}
		for c := range rec.Components {
			rec.Components[c] = introspect.GlyphID(u16(comps[2*c:]))
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// parseCoverage expands a coverage table into a list of glyphs, in coverage
// index order.
func parseCoverage(b binarySegm) ([]introspect.GlyphID, error) {
	format, err := b.u16(0)
	if err != nil {
		return nil, err
	}
	count, err := b.u16(2)
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		glyphs, err := b.view(4, 2*int(count))
		if err != nil {
			return nil, err
		}
		cov := make([]introspect.GlyphID, count)
		for i := range cov {
			cov[i] = introspect.GlyphID(u16(glyphs[2*i:]))
		}
		return cov, nil
	case 2:
		ranges, err := b.view(4, 6*int(count))
		if err != nil {
			return nil, err
		}
		var cov []introspect.GlyphID
		for r := ranges; len(r) > 0; r = r[6:] {
			start, end, index := u16(r), u16(r[2:]), u16(r[4:])
			if start > end || int(index) != len(cov) {
				return nil, fmt.Errorf("invalid range record [%d,%d]@%d", start, end, index)
			}
			if len(cov)+int(end-start)+1 > MaxCoverageGlyphs {
				return nil, fmt.Errorf("coverage exceeds %d glyphs", MaxCoverageGlyphs)
			}
			for g := uint32(start); g <= uint32(end); g++ {
				cov = append(cov, introspect.GlyphID(g))
			}
		}
		return cov, nil
	}
	return nil, fmt.Errorf("unknown coverage format %d", format)
}
