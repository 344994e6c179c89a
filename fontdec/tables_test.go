package fontdec

import (
	"testing"

	"github.com/npillmayer/fontsieve/internal/fonttest"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// cmapWith wraps a single subtable into a cmap table.
func cmapWith(pid, psid uint16, sub []byte) []byte {
	b := make([]byte, 12)
	fonttest.PutU16(b, 2, 1)
	fonttest.PutU16(b, 4, pid)
	fonttest.PutU16(b, 6, psid)
	fonttest.PutU32(b, 8, 12)
	return append(b, sub...)
}

func TestCMapFormat4(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.decoder")
	defer teardown()
	// segments: [0x41,0x43] delta -0x40, [0x61,0x62] via glyph id array, [0xffff]
	sub := make([]byte, 16+4*6+4)
	fonttest.PutU16(sub, 0, 4)
	fonttest.PutU16(sub, 6, 6) // segCountX2
	ends, starts, deltas, ros := 14, 22, 28, 34
	fonttest.PutU16(sub, ends, 0x43)
	fonttest.PutU16(sub, ends+2, 0x62)
	fonttest.PutU16(sub, ends+4, 0xffff)
	fonttest.PutU16(sub, starts, 0x41)
	fonttest.PutU16(sub, starts+2, 0x61)
	fonttest.PutU16(sub, starts+4, 0xffff)
	fonttest.PutU16(sub, deltas, uint16(0x10000-0x40))
	fonttest.PutU16(sub, deltas+2, 1)
	fonttest.PutU16(sub, deltas+4, 1)
	fonttest.PutU16(sub, ros+2, 4) // from ros+2 to glyph array at 40
	fonttest.PutU16(sub, 40, 9)
	fonttest.PutU16(sub, 42, 0) // unmapped
	ic := &issueCollector{}
	cm, err := parseCMap(cmapWith(3, 1, sub), ic)
	require.NoError(t, err)
	assert.Equal(t, charMap{'A': 1, 'B': 2, 'C': 3, 'a': 10}, cm)
	assert.Equal(t, []rune{'A', 'B', 'C', 'a'}, cm.codePoints())
}

func TestCMapFormat12(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.decoder")
	defer teardown()
	sub := make([]byte, 16+2*12)
	fonttest.PutU16(sub, 0, 12)
	fonttest.PutU32(sub, 12, 2)
	fonttest.PutU32(sub, 16, 0x30)
	fonttest.PutU32(sub, 20, 0x32)
	fonttest.PutU32(sub, 24, 5)
	fonttest.PutU32(sub, 28, 0x1f600)
	fonttest.PutU32(sub, 32, 0x1f600)
	fonttest.PutU32(sub, 36, 20)
	cm, err := parseCMap(cmapWith(3, 10, sub), &issueCollector{})
	require.NoError(t, err)
	assert.Equal(t, charMap{'0': 5, '1': 6, '2': 7, 0x1f600: 20}, cm)
}

func TestCMapMacRoman(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.decoder")
	defer teardown()
	sub := make([]byte, 6+256)
	sub[6+'A'] = 1
	sub[6+0x8e] = 2 // é in Mac Roman
	cm, err := parseCMap(cmapWith(1, 0, sub), &issueCollector{})
	require.NoError(t, err)
	assert.Equal(t, charMap{'A': 1, 'é': 2}, cm)
}

func TestCMapUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.decoder")
	defer teardown()
	sub := make([]byte, 16)
	fonttest.PutU16(sub, 0, 14) // variation sequences only
	_, err := parseCMap(cmapWith(0, 5, sub), &issueCollector{})
	assert.Error(t, err)
	_, err = parseCMap(cmapWith(3, 1, sub), &issueCollector{})
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.decoder")
	defer teardown()
	strs := []byte("Mac Family")
	winFamily := []byte{0, 'W', 0, 'i', 0, 'n'}
	winStyle := []byte{0, 'B', 0, 'o', 0, 'l', 0, 'd'}
	recs := [][6]uint16{ // platform, encoding, language, name, length, offset
		{1, 0, 0, 1, uint16(len(strs)), 0},
		{3, 1, 0x409, 1, 6, uint16(len(strs))},
		{3, 1, 0x407, 2, 8, uint16(len(strs) + 6)},
		{1, 0, 0, 2, 3, 0},
		{1, 0, 0, 4, 3, 0},
		{3, 1, 0x409, 5, 200, 0}, // out of bounds
	}
	b := make([]byte, 6+12*len(recs))
	fonttest.PutU16(b, 2, uint16(len(recs)))
	fonttest.PutU16(b, 4, uint16(len(b)))
	for i, r := range recs {
		for j, v := range r {
			fonttest.PutU16(b, 6+12*i+2*j, v)
		}
	}
	b = append(b, strs...)
	b = append(b, winFamily...)
	b = append(b, winStyle...)
	ic := &issueCollector{}
	names, err := parseNames(b, ic)
	require.NoError(t, err)
	assert.Equal(t, "Win", names[NameFamily])
	assert.Equal(t, "Bold", names[NameSubfamily])
	assert.Equal(t, "Mac", names[NameFullName])
	assert.Empty(t, names[NameVersion])
	assert.Len(t, ic.issues, 1)
}

func TestHeadRevision(t *testing.T) {
	b := make([]byte, 54)
	fonttest.PutU32(b, 4, 0x00018000)
	fonttest.PutU16(b, 18, 1000)
	fonttest.PutU16(b, 36, uint16(0x10000-50))
	h, err := parseHead(b)
	require.NoError(t, err)
	assert.Equal(t, "1.500", h.revision())
	assert.Equal(t, uint16(1000), h.unitsPerEm)
	assert.Equal(t, int16(-50), h.xMin)
	_, err = parseHead(b[:20])
	assert.Error(t, err)
}

func TestCoverage(t *testing.T) {
	cov, err := parseCoverage(fonttest.CoverageFmt2(10, 13))
	require.NoError(t, err)
	assert.Equal(t, []introspect.GlyphID{10, 11, 12, 13}, cov)
	cov, err = parseCoverage(fonttest.CoverageFmt1(7, 3))
	require.NoError(t, err)
	assert.Equal(t, []introspect.GlyphID{7, 3}, cov)
	_, err = parseCoverage([]byte{0, 3, 0, 0})
	assert.Error(t, err)
	_, err = parseCoverage(fonttest.CoverageFmt1(1, 2)[:5])
	assert.Error(t, err)
}

func TestLigatureSetCountMismatch(t *testing.T) {
	sub := fonttest.LigatureSubstCoverage(fonttest.CoverageFmt1(5, 6),
		[]fonttest.Ligature{{Glyph: 9, Components: []uint16{5, 6, 7}}},
	)
	st, err := parseLigatureSubst(sub)
	require.NoError(t, err, "mismatched counts are reported as found")
	assert.Len(t, st.Coverage, 2)
	require.Len(t, st.LigatureSets, 1)
	assert.Equal(t, []introspect.GlyphID{6, 7}, st.LigatureSets[0][0].Components)
}

func TestFeatureTags(t *testing.T) {
	gpos := fonttest.LayoutTable([]string{"kern", "mark", "kern"})
	features, err := layoutSection(gpos, featureListOffset)
	require.NoError(t, err)
	tags, err := featureTags(features)
	require.NoError(t, err)
	assert.Equal(t, []Tag{T("kern"), T("mark")}, tags)
	_, err = layoutSection([]byte{0, 2, 0, 0}, featureListOffset)
	assert.ErrorIs(t, err, errLayoutHeader)
}

func TestUIntBase128(t *testing.T) {
	v, n, err := readUIntBase128(binarySegm{0x3f}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(63), v)
	assert.Equal(t, 1, n)
	v, n, err = readUIntBase128(binarySegm{0x81, 0x00}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), v)
	assert.Equal(t, 2, n)
	_, _, err = readUIntBase128(binarySegm{0x80, 0x01}, 0)
	assert.Error(t, err)
	_, _, err = readUIntBase128(binarySegm{0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, 0)
	assert.Error(t, err)
}

func TestAssembleSFNT(t *testing.T) {
	tables := map[Tag][]byte{
		T("name"): {1, 2, 3},
		T("cmap"): {4, 5, 6, 7, 8},
		T("OS/2"): {9},
	}
	b := assembleSFNT(sfntTrueType, tables)
	assert.Zero(t, len(b)%4)
	dir, err := readTableDirectory(b, 0)
	require.NoError(t, err)
	require.Len(t, dir, 3)
	for tag, data := range tables {
		assert.Equal(t, binarySegm(data), dir[tag], "table %s", tag)
	}
}

func TestSVGPath(t *testing.T) {
	p := func(x, y int) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.Int26_6(x), Y: fixed.Int26_6(y)}
	}
	segs := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{p(0, 0)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{p(100, -700)}},
		{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{p(150, -750), p(200, 0)}},
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{p(10, -10)}},
		{Op: sfnt.SegmentOpCubeTo, Args: [3]fixed.Point26_6{p(1, -1), p(2, -2), p(3, 3)}},
	}
	assert.Equal(t, "M0 0L100 700Q150 750 200 0ZM10 10C1 1 2 2 3 -3Z", svgPath(segs))
	assert.Empty(t, svgPath(nil))
}
