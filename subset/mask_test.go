package subset

import (
	"testing"

	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(catID string, ids ...introspect.GlyphID) introspect.GlyphGroup {
	cat, _ := glyphcat.ByID(catID)
	g := introspect.GlyphGroup{Category: cat}
	for _, id := range ids {
		g.Glyphs = append(g.Glyphs, introspect.Glyph{ID: id, CategoryID: catID})
	}
	return g
}

func testFont() *introspect.ParsedFont {
	return &introspect.ParsedFont{
		TotalGlyphs: 100,
		Groups: []introspect.GlyphGroup{
			group("basic-latin", 1, 2, 3, 4),
			group("greek", 10, 11),
			group(glyphcat.LigaturesID),
		},
	}
}

func TestMaskToggle(t *testing.T) {
	m := Mask{}
	assert.False(t, m.Disabled(1))
	assert.True(t, m.Toggle(1))
	assert.True(t, m.Disabled(1))
	assert.False(t, m.Toggle(1))
	assert.False(t, m.Disabled(1))
	assert.Empty(t, m, "enabled glyphs are not stored")
	m.Set(5, true)
	m.Set(6, true)
	m.EnableAll()
	assert.Empty(t, m)
}

func TestMaskToggleGroup(t *testing.T) {
	pf := testFont()
	latin := pf.Groups[0]
	m := Mask{}
	m.Set(2, true)
	assert.Equal(t, GroupMixed, m.GroupState(latin))
	assert.True(t, m.ToggleGroup(latin), "partially enabled group gets disabled")
	assert.Equal(t, GroupDisabled, m.GroupState(latin))
	assert.Equal(t, 0, m.GroupEnabledCount(latin))
	assert.False(t, m.ToggleGroup(latin), "disabled group gets enabled")
	assert.Equal(t, GroupEnabled, m.GroupState(latin))
	assert.Equal(t, GroupEnabled, m.GroupState(pf.Groups[2]), "empty group")
}

func TestMaskCounts(t *testing.T) {
	pf := testFont()
	m := Mask{}
	m.Set(1, true)
	m.Set(10, true)
	m.Set(99, true) // not part of any group
	assert.Equal(t, 2, m.DisabledCount(pf))
	assert.Equal(t, 98, m.EnabledCount(pf))
	assert.Equal(t, 3, m.GroupEnabledCount(pf.Groups[0]))
	assert.Equal(t, 0, m.EnabledCount(nil))
}

func TestSummarize(t *testing.T) {
	pf := testFont()
	m := Mask{}
	r := Summarize(pf, m, 10000)
	assert.Equal(t, Report{
		TotalGlyphs:   100,
		EnabledGlyphs: 100,
		FileSize:      10000,
		Retained:      Estimation{6500, 6},
		ResultSize:    10000,
	}, r)
	assert.Equal(t, "100 glyphs, 9.8 KB", r.String())

	m.ToggleGroup(pf.Groups[0])
	r = Summarize(pf, m, 10000)
	assert.Equal(t, 96, r.EnabledGlyphs)
	assert.Equal(t, Estimation{260, 0}, r.Savings)
	assert.Equal(t, int64(9740), r.ResultSize)
	assert.Equal(t, "96 / 100 glyphs, 9.8 KB → 9.5 KB", r.String())
}

func TestSummarizeGroup(t *testing.T) {
	pf := testFont()
	m := Mask{}
	m.Set(11, true)
	gr := SummarizeGroup(pf, pf.Groups[1], m, 100000)
	require.Equal(t, "greek", gr.Category.ID)
	assert.Equal(t, 2, gr.Glyphs)
	assert.Equal(t, 1, gr.Enabled)
	assert.Equal(t, GroupMixed, gr.State)
	assert.Equal(t, "~1%", gr.Weight)
	assert.Equal(t, Estimation{650, 1}, gr.Estimate)
	assert.Equal(t, "1 / 2", gr.Count())
	gr = SummarizeGroup(pf, pf.Groups[0], m, 100000)
	assert.Equal(t, "4", gr.Count())
	assert.Equal(t, "~4%", gr.Weight)
}
