package glyphcat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCodePoint(t *testing.T) {
	cases := []struct {
		cp rune
		id string
	}{
		{0x0020, "basic-latin"},
		{'A', "basic-latin"},
		{0x007e, "basic-latin"},
		{0x007f, OtherID}, // DEL is not printable
		{0x0000, OtherID},
		{0x00a0, "latin-supplement"},
		{0x00e9, "latin-supplement"},
		{0x0142, "latin-extended"},
		{0x1e9e, "latin-extended"},
		{0x2014, "punctuation"},
		{0x20ac, "currency"},
		{0x2122, "symbols"},
		{0x2764, "symbols"},
		{0x221e, "math"},
		{0x03a9, "greek"},
		{0x1f00, "greek"},
		{0x0416, "cyrillic"},
		{0xa640, "cyrillic"},
		{0x2588, "box-drawing"},
		{0x1f600, "emoji"},
		{0x1f9ff, "emoji"},
		{0x1f700, OtherID},
		{0x4e2d, OtherID},
		{0x10ffff, OtherID},
	}
	for _, c := range cases {
		cat := ForCodePoint(c.cp)
		assert.Equal(t, c.id, cat.ID, "category for %s", FormatCodePoint(c.cp))
	}
}

func TestForCodePointContainsResult(t *testing.T) {
	for cp := rune(0); cp < 0x20000; cp += 7 {
		cat := ForCodePoint(cp)
		if cat.ID == OtherID {
			for _, c := range declared {
				if c.Contains(cp) {
					t.Fatalf("%s is contained in %q but resolved to other", FormatCodePoint(cp), c.ID)
				}
			}
			continue
		}
		if !IsInCategory(cp, cat) {
			t.Fatalf("%s resolved to %q which does not contain it", FormatCodePoint(cp), cat.ID)
		}
		if again := ForCodePoint(cp); again.ID != cat.ID {
			t.Fatalf("lookup of %s is not stable: %q vs %q", FormatCodePoint(cp), cat.ID, again.ID)
		}
	}
}

func TestCategoryOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 13)
	assert.Equal(t, "basic-latin", cats[0].ID)
	assert.Equal(t, OtherID, cats[len(cats)-2].ID)
	assert.Equal(t, LigaturesID, cats[len(cats)-1].ID)
	assert.Empty(t, cats[len(cats)-1].Ranges)
	assert.Empty(t, cats[len(cats)-2].Ranges)
	seen := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seen[c.ID], "duplicate category id %q", c.ID)
		seen[c.ID] = true
	}
}

func TestRangesWithinCategoryDoNotOverlap(t *testing.T) {
	for _, c := range Categories() {
		for i, a := range c.Ranges {
			assert.LessOrEqual(t, a.Start, a.End, "%s range %d is inverted", c.ID, i)
			for j, b := range c.Ranges {
				if i == j {
					continue
				}
				if a.Start <= b.End && b.Start <= a.End {
					t.Errorf("%s: ranges %d and %d overlap", c.ID, i, j)
				}
			}
		}
	}
}

func TestCategoriesAreCopies(t *testing.T) {
	cats := Categories()
	cats[0].Ranges[0] = Range{0, 0}
	cats[0].Name = "changed"
	again := Categories()
	assert.Equal(t, "Basic Latin", again[0].Name)
	assert.Equal(t, Range{0x20, 0x7e}, again[0].Ranges[0])
	assert.Equal(t, "basic-latin", ForCodePoint('x').ID)
}

func TestByID(t *testing.T) {
	c, ok := ByID("greek")
	require.True(t, ok)
	assert.Equal(t, "Greek", c.Name)
	_, ok = ByID("klingon")
	assert.False(t, ok)
	assert.Equal(t, Ligatures().ID, LigaturesID)
	assert.Equal(t, Other().Name, "Other")
}

func TestFormatCodePoint(t *testing.T) {
	assert.Equal(t, "U+0041", FormatCodePoint('A'))
	assert.Equal(t, "U+00E9", FormatCodePoint(0xe9))
	assert.Equal(t, "U+1F600", FormatCodePoint(0x1f600))
}
