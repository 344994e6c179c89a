/*
Package glyphcat classifies Unicode code points into semantic glyph categories.

Categories are tuned for subsetting decisions: they are listed roughly in the order of
typical usage frequency in web content. The table is static and immutable; clients
receive copies of its entries.

Lookup scans the categories in declaration order and the first category containing a
code point wins. Declaration order is therefore part of the contract: if ranges of
future categories overlap, the category listed first takes precedence.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphcat

import "fmt"

// Range is an inclusive range of code points.
type Range struct {
	Start rune `json:"start"`
	End   rune `json:"end"`
}

// Contains reports whether cp lies within r, bounds included.
func (r Range) Contains(cp rune) bool {
	return cp >= r.Start && cp <= r.End
}

// Category is a named group of code-point ranges.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Ranges      []Range `json:"ranges"`
}

// Contains reports whether cp is covered by any of c's ranges.
func (c Category) Contains(cp rune) bool {
	for _, r := range c.Ranges {
		if r.Contains(cp) {
			return true
		}
	}
	return false
}

// IsInCategory is a pure containment predicate over the ranges of a category.
func IsInCategory(cp rune, c Category) bool {
	return c.Contains(cp)
}

// Identifiers of the two synthetic categories. Neither of them has ranges.
const (
	OtherID     = "other"
	LigaturesID = "ligatures"
)

var other = Category{
	ID:          OtherID,
	Name:        "Other",
	Description: "Uncategorized glyphs",
}

var ligatures = Category{
	ID:          LigaturesID,
	Name:        "Ligatures",
	Description: "Glyph substitutions for character sequences (e.g. fi, fl)",
}

// declared is the category table. Order matters, see package documentation.
var declared = []Category{
	{
		ID:          "basic-latin",
		Name:        "Basic Latin",
		Description: "Essential letters, numbers, and ASCII punctuation",
		Ranges: []Range{
			{0x0020, 0x007e}, // printable ASCII
		},
	},
	{
		ID:          "latin-supplement",
		Name:        "Latin Supplement",
		Description: "Extended Latin characters with diacritics (Western European)",
		Ranges: []Range{
			{0x00a0, 0x00ff}, // Latin-1 Supplement
		},
	},
	{
		ID:          "latin-extended",
		Name:        "Latin Extended",
		Description: "Additional Latin characters for Central/Eastern European languages",
		Ranges: []Range{
			{0x0100, 0x017f}, // Latin Extended-A
			{0x0180, 0x024f}, // Latin Extended-B
			{0x1e00, 0x1eff}, // Latin Extended Additional
		},
	},
	{
		ID:          "punctuation",
		Name:        "General Punctuation",
		Description: "Typographic punctuation, dashes, quotes, and spaces",
		Ranges: []Range{
			{0x2000, 0x206f},
		},
	},
	{
		ID:          "currency",
		Name:        "Currency Symbols",
		Description: "Currency signs and symbols",
		Ranges: []Range{
			{0x20a0, 0x20cf},
		},
	},
	{
		ID:          "symbols",
		Name:        "Common Symbols",
		Description: "Letterlike symbols, number forms, and miscellaneous symbols",
		Ranges: []Range{
			{0x2100, 0x214f}, // Letterlike Symbols
			{0x2150, 0x218f}, // Number Forms
			{0x2190, 0x21ff}, // Arrows
			{0x2600, 0x26ff}, // Miscellaneous Symbols
			{0x2700, 0x27bf}, // Dingbats
		},
	},
	{
		ID:          "math",
		Name:        "Mathematical",
		Description: "Mathematical operators and symbols",
		Ranges: []Range{
			{0x2200, 0x22ff}, // Mathematical Operators
			{0x2300, 0x23ff}, // Miscellaneous Technical
			{0x27c0, 0x27ef}, // Miscellaneous Mathematical Symbols-A
			{0x2980, 0x29ff}, // Miscellaneous Mathematical Symbols-B
			{0x2a00, 0x2aff}, // Supplemental Mathematical Operators
		},
	},
	{
		ID:          "greek",
		Name:        "Greek",
		Description: "Greek alphabet and Coptic",
		Ranges: []Range{
			{0x0370, 0x03ff},
			{0x1f00, 0x1fff}, // Greek Extended
		},
	},
	{
		ID:          "cyrillic",
		Name:        "Cyrillic",
		Description: "Cyrillic alphabet",
		Ranges: []Range{
			{0x0400, 0x04ff},
			{0x0500, 0x052f}, // Cyrillic Supplement
			{0x2de0, 0x2dff}, // Cyrillic Extended-A
			{0xa640, 0xa69f}, // Cyrillic Extended-B
		},
	},
	{
		ID:          "box-drawing",
		Name:        "Box Drawing",
		Description: "Box drawing characters and block elements",
		Ranges: []Range{
			{0x2500, 0x257f}, // Box Drawing
			{0x2580, 0x259f}, // Block Elements
			{0x25a0, 0x25ff}, // Geometric Shapes
		},
	},
	{
		ID:          "emoji",
		Name:        "Emoji & Pictographs",
		Description: "Emoji and pictographic symbols",
		Ranges: []Range{
			{0x1f300, 0x1f5ff}, // Miscellaneous Symbols and Pictographs
			{0x1f600, 0x1f64f}, // Emoticons
			{0x1f680, 0x1f6ff}, // Transport and Map Symbols
			{0x1f900, 0x1f9ff}, // Supplemental Symbols and Pictographs
		},
	},
	other,
	ligatures,
}

// Categories returns the category table in declaration order, including the
// synthetic categories "other" and "ligatures" (in this order) at the end.
//
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	cats := make([]Category, len(declared))
	for i, c := range declared {
		cats[i] = c.clone()
	}
	return cats
}

// ForCodePoint returns the first category in declaration order whose ranges
// contain cp. If no category matches, the "other" category is returned.
func ForCodePoint(cp rune) Category {
	for i := range declared {
		if declared[i].Contains(cp) {
			return declared[i].clone()
		}
	}
	return other.clone()
}

// ByID finds a category by its identifier.
func ByID(id string) (Category, bool) {
	for _, c := range declared {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Category{}, false
}

// Other returns the fallback category for code points not covered by the table.
func Other() Category {
	return other.clone()
}

// Ligatures returns the synthetic category for ligature glyphs.
func Ligatures() Category {
	return ligatures.clone()
}

func (c Category) clone() Category {
	if c.Ranges != nil {
		c.Ranges = append([]Range(nil), c.Ranges...)
	}
	return c
}

// FormatCodePoint formats a code point in the conventional U+XXXX notation,
// using at least four hex digits.
func FormatCodePoint(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}
